package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct{ calls []string }

type step struct {
	name string
	rec  *recorder
	err  error
}

func (s step) Shutdown(context.Context) error {
	s.rec.calls = append(s.rec.calls, s.name)
	return s.err
}

func (s step) Stop(context.Context) error {
	s.rec.calls = append(s.rec.calls, s.name)
	return s.err
}

type stopStep struct {
	name string
	rec  *recorder
}

func (p stopStep) Stop() { p.rec.calls = append(p.rec.calls, p.name) }

type storeStep struct{ rec *recorder }

func (s storeStep) Close() { s.rec.calls = append(s.rec.calls, "store") }

func TestGracefulShutdown_Order(t *testing.T) {
	rec := &recorder{}
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:         step{"server", rec, errors.New("slow client")},
		RolloverWorker: step{"rollover", rec, nil},
		Scheduler:      stopStep{"scheduler", rec},
		Pool:           stopStep{"pool", rec},
		Journey:        step{"journey", rec, nil},
		Economy:        step{"economy", rec, errors.New("timeout")},
		Profile:        step{"profile", rec, nil},
		DayCycle:       step{"daycycle", rec, nil},
		Publisher:      step{"publisher", rec, nil},
		StateClose:     func() { rec.calls = append(rec.calls, "state") },
		Store:          storeStep{rec},
	})

	assert.Equal(t, []string{
		"server", "rollover", "scheduler", "pool",
		"journey", "economy", "profile", "daycycle",
		"publisher", "state", "store",
	}, rec.calls)
}

func TestGracefulShutdown_SkipsMissingComponents(t *testing.T) {
	rec := &recorder{}
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Journey: step{"journey", rec, nil}})
	})
	assert.Equal(t, []string{"journey"}, rec.calls)
}
