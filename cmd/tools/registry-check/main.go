// cmd/tools/registry-check/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jobseeker-scoring/internal/common/errors"
	"jobseeker-scoring/internal/common/validation"
	"jobseeker-scoring/pkg/registry"

	calc "jobseeker-scoring/internal/workers/scoring/calculate-jobseeker-score"
	elig "jobseeker-scoring/internal/workers/scoring/check-job-eligibility"
	notify "jobseeker-scoring/internal/workers/scoring/notify-score-change"
	update "jobseeker-scoring/internal/workers/scoring/update-jobseeker-score"
)

// requiredTaskTypes are the task types the worker manager opens.
var requiredTaskTypes = []string{calc.TaskType, update.TaskType, elig.TaskType, notify.TaskType}

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validatePath := validateCmd.String("path", "configs/activity-registry.json", "Path to registry file")

	inputCmd := flag.NewFlagSet("check-input", flag.ExitOnError)
	inputPath := inputCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	inputTask := inputCmd.String("task", "", "Task type whose input schema applies")
	inputFile := inputCmd.String("file", "", "JSON file with job variables")

	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	updatePath := updateCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	updateTask := updateCmd.String("task", "", "Task type to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries)")
	value := updateCmd.String("value", "", "New value for the field")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		if err == nil {
			err = validateRegistry(reg)
		}
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	case "check-input":
		inputCmd.Parse(os.Args[2:])
		if *inputTask == "" || *inputFile == "" {
			fmt.Println("Error: task and file are required for check-input.")
			inputCmd.Usage()
			os.Exit(1)
		}
		doc, err := os.ReadFile(*inputFile)
		if err == nil {
			err = checkInput(*inputPath, *inputTask, string(doc))
		}
		if err != nil {
			fmt.Printf("Input rejected: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Input accepted.")

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *updateTask == "" || *field == "" || *value == "" {
			fmt.Println("Error: task, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *updateTask, *field, *value, time.Now()); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated %s, field %s to %s\n", *updateTask, *field, *value)

	default:
		help()
	}
}

// validateRegistry checks the fields the worker manager relies on and that every
// input schema compiles.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	seen := make(map[string]bool)
	for _, a := range reg.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity %q missing required field: taskType", a.ID)
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		seen[a.TaskType] = true

		if _, err := a.TimeoutDuration(); err != nil {
			return err
		}
		for _, code := range a.ErrorCodes {
			if _, ok := errors.BPMNErrorMapping[errors.ErrorCode(code)]; !ok {
				return fmt.Errorf("activity %s: unknown error code %s", a.TaskType, code)
			}
		}
	}

	for _, taskType := range requiredTaskTypes {
		if !seen[taskType] {
			return fmt.Errorf("no activity registered for task type %s", taskType)
		}
	}

	if _, err := validation.NewSchemaValidator(reg); err != nil {
		return fmt.Errorf("compile input schemas: %w", err)
	}
	return nil
}

func checkInput(path, taskType, document string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	v, err := validation.NewSchemaValidator(reg)
	if err != nil {
		return err
	}
	return v.ValidateJSON(taskType, document)
}

func updateActivity(path, taskType, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}

	a, ok := reg.Find(taskType)
	if !ok {
		return fmt.Errorf("no activity registered for task type %s", taskType)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = now.UTC().Format(time.RFC3339)
	return saveRegistry(reg, path)
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func help() {
	fmt.Println(`
Usage: registry-check <command> [flags]

Commands:
  validate     Check the registry against the scoring workers
  check-input  Validate a job variables file against a task's input schema
  update       Update an activity's status, version, timeout or retries

Examples:
  registry-check validate -path configs/activity-registry.json
  registry-check check-input -task check-job-eligibility -file vars.json
  registry-check update -task notify-score-change -field timeout -value 20s`)
}
