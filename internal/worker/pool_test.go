package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(job))
	require.NoError(t, pool.Enqueue(job))

	pool.Stop()

	assert.Equal(t, int32(2), atomic.LoadInt32(&executed))
}

func TestPool_StopDrainsQueue(t *testing.T) {
	var executed int32
	pool := NewPool(1, 50)

	// Queue before starting so every job is pending when Stop runs
	for i := 0; i < 20; i++ {
		require.True(t, pool.TryEnqueue(JobFunc(func(ctx context.Context) error {
			atomic.AddInt32(&executed, 1)
			return nil
		})))
	}
	pool.Start()
	pool.Stop()

	assert.Equal(t, int32(20), atomic.LoadInt32(&executed))
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()

	assert.ErrorIs(t, pool.Enqueue(JobFunc(func(context.Context) error { return nil })), ErrPoolStopped)
	assert.False(t, pool.TryEnqueue(JobFunc(func(context.Context) error { return nil })))
	assert.NotPanics(t, pool.Stop, "Stop is idempotent")
}

func TestPool_TryEnqueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	noop := JobFunc(func(context.Context) error { return nil })

	assert.True(t, pool.TryEnqueue(noop))
	assert.False(t, pool.TryEnqueue(noop), "queue holds one job and no worker is running")

	pool.Start()
	pool.Stop()
}

func TestPool_FailuresAndPanicsDoNotKillWorkers(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()

	require.NoError(t, pool.Enqueue(NewJob("failing", func(context.Context) error { return errors.New("boom") })))
	require.NoError(t, pool.Enqueue(NewJob("panicking", func(context.Context) error { panic("oops") })))
	require.NoError(t, pool.Enqueue(JobFunc(func(context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})))

	pool.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(1, 1)
	pool.SetJobTimeout(10 * time.Millisecond)
	pool.Start()

	var deadlineHit atomic.Bool
	require.NoError(t, pool.Enqueue(JobFunc(func(ctx context.Context) error {
		<-ctx.Done()
		deadlineHit.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	})))

	pool.Stop()
	assert.True(t, deadlineHit.Load())
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "persist", jobName(NewJob("persist", func(context.Context) error { return nil })))
	assert.Equal(t, "*worker.testJob", jobName(&testJob{}))
}
