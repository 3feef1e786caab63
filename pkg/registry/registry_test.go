package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `{
  "version": "1.0.0",
  "activities": [
    {"id": "scoring.jobseeker.calculate", "taskType": "calculate-jobseeker-score", "retries": 3,
     "inputSchema": {"type": "object", "required": ["userId"]}},
    {"id": "scoring.jobseeker.eligibility", "taskType": "check-job-eligibility", "retries": 3}
  ]
}`

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", reg.Version)
	assert.Equal(t, []string{"calculate-jobseeker-score", "check-job-eligibility"}, reg.TaskTypes())

	activity, ok := reg.Find("calculate-jobseeker-score")
	require.True(t, ok)
	assert.Equal(t, "scoring.jobseeker.calculate", activity.ID)
	assert.Equal(t, "object", activity.InputSchema["type"])

	_, ok = reg.Find("unknown")
	assert.False(t, ok)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Parse([]byte("{not json"))
	assert.Error(t, err)

	var nilReg *ActivityRegistry
	_, ok := nilReg.Find("anything")
	assert.False(t, ok)
}

func TestActivity_TimeoutDuration(t *testing.T) {
	d, err := Activity{TaskType: "x", Timeout: "15s"}.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	d, err = Activity{TaskType: "x"}.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = Activity{TaskType: "x", Timeout: "soon"}.TimeoutDuration()
	assert.Error(t, err)
}

func TestActivity_HasInputSchema(t *testing.T) {
	assert.False(t, Activity{}.HasInputSchema())
	assert.True(t, Activity{InputSchema: map[string]interface{}{"type": "object"}}.HasInputSchema())
}
