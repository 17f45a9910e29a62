package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	repo := new(MockRepository)
	job := NewCleanupJob(newTestService(repo), 10*24*time.Hour)

	repo.On("PurgeActivityBefore", mock.Anything, now.Add(-10*24*time.Hour)).Return(int64(100), nil)

	assert.NoError(t, job.Process(context.Background()))
	repo.AssertExpectations(t)
}

func TestCleanupJob_ProcessError(t *testing.T) {
	repo := new(MockRepository)
	job := NewCleanupJob(newTestService(repo), time.Hour)
	repo.On("PurgeActivityBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("locked"))

	assert.Error(t, job.Process(context.Background()))
}
