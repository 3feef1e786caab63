// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activity registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a registry document.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode activity registry: %w", err)
	}
	return &reg, nil
}

// Find returns the activity registered for a task type.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes lists every registered task type in declaration order.
func (r *ActivityRegistry) TaskTypes() []string {
	types := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		types = append(types, a.TaskType)
	}
	return types
}
