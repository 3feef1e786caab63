package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveJob(t *testing.T) {
	before := testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("metrics-test"))
	failedBefore := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("metrics-test", "USER_NOT_FOUND"))

	ObserveJob("metrics-test", 0.2, "")
	ObserveJob("metrics-test", 0.1, "USER_NOT_FOUND")

	assert.Equal(t, before+1, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("metrics-test")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("metrics-test", "USER_NOT_FOUND")))
}

func TestObserveScore(t *testing.T) {
	before := testutil.ToFloat64(ScoreCalculations.WithLabelValues("metrics-test", "strong"))

	ObserveScore("metrics-test", "strong", 75)

	assert.Equal(t, before+1, testutil.ToFloat64(ScoreCalculations.WithLabelValues("metrics-test", "strong")))
}
