package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name string
	runs int
	err  error
}

func (j *fakeJob) Run() error   { j.runs++; return j.err }
func (j *fakeJob) Name() string { return j.name }

func TestSchedulerAddJob(t *testing.T) {
	s := New(zerolog.Nop())

	assert.NoError(t, s.AddJob("0 0 2 * * *", &fakeJob{name: "nightly"}))
	assert.NoError(t, s.AddJob("@every 30s", &fakeJob{name: "interval"}))
	assert.Error(t, s.AddJob("not a schedule", &fakeJob{name: "broken"}))
}

func TestSchedulerRunNow(t *testing.T) {
	s := New(zerolog.Nop())

	job := &fakeJob{name: "manual"}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	failing := &fakeJob{name: "failing", err: errors.New("boom")}
	assert.Error(t, s.RunNow(failing))
	assert.Equal(t, 1, failing.runs)
}
