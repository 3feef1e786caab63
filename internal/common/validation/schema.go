// Package validation checks worker inputs against the JSON schemas declared
// in the activity registry.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"jobseeker-scoring/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaValidator holds compiled input schemas keyed by task type.
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaValidator compiles the input schema of every registered activity.
// Activities without an input schema accept any input.
func NewSchemaValidator(reg *registry.ActivityRegistry) (*SchemaValidator, error) {
	v := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema)}
	if reg == nil {
		return v, nil
	}
	for _, activity := range reg.Activities {
		if !activity.HasInputSchema() {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(activity.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", activity.TaskType, err)
		}
		v.schemas[activity.TaskType] = schema
	}
	return v, nil
}

// ValidationError lists every schema violation of one document.
type ValidationError struct {
	TaskType string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input validation failed for %s: %s", e.TaskType, strings.Join(e.Problems, "; "))
}

// ValidateJSON validates a raw job variables document.
func (v *SchemaValidator) ValidateJSON(taskType, document string) error {
	return v.validate(taskType, gojsonschema.NewStringLoader(document))
}

// Validate validates an already decoded value.
func (v *SchemaValidator) Validate(taskType string, value interface{}) error {
	return v.validate(taskType, gojsonschema.NewGoLoader(value))
}

func (v *SchemaValidator) validate(taskType string, doc gojsonschema.JSONLoader) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return &ValidationError{TaskType: taskType, Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{TaskType: taskType, Problems: problems}
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
