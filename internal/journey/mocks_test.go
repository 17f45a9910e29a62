package journey

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/Ascendant_Go/internal/database/sqlite"
	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/worker"
)

// inlineQueue runs jobs on the caller's goroutine so persistence is observable right after a call
type inlineQueue struct{}

func (inlineQueue) TryEnqueue(job worker.Job) bool {
	_ = job.Process(context.Background())
	return true
}

// MockJobQueue implements JobQueue for testing
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) TryEnqueue(job worker.Job) bool {
	args := m.Called(job)
	return args.Bool(0)
}

// recordingQueue holds jobs until the test runs them, in whatever order it chooses
type recordingQueue struct {
	mu   sync.Mutex
	jobs []worker.Job
}

func (q *recordingQueue) TryEnqueue(job worker.Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return true
}

// runNewestFirst drains the queue in reverse submission order
func (q *recordingQueue) runNewestFirst(ctx context.Context) {
	q.mu.Lock()
	jobs := q.jobs
	q.jobs = nil
	q.mu.Unlock()
	for i := len(jobs) - 1; i >= 0; i-- {
		_ = jobs[i].Process(ctx)
	}
}

// failingProfileStore fails every profile write
type failingProfileStore struct {
	*sqlite.Store
}

var errProfileWrite = errors.New("profile write failed")

func (f failingProfileStore) UpdateProfile(context.Context, string, domain.ProfileUpdate) (*domain.Profile, error) {
	return nil, errProfileWrite
}
