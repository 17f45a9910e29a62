package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Ascendant_Go/internal/logger"
)

type retryItem struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps a Bus so a failed publish never reaches the caller.
// Failures are retried in the background with exponential backoff and written to a
// dead-letter file once retries are exhausted.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	queue    chan retryItem
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry loop
func NewResilientPublisher(inner Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dlw,
		queue:      make(chan retryItem, RetryQueueBufferSize),
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryLoop()
	return p, nil
}

// Publish implements Bus. It always returns nil; failures are retried in the background.
func (p *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	p.PublishWithRetry(ctx, evt)
	return nil
}

// PublishWithRetry publishes once synchronously and queues the event for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := p.inner.Publish(ctx, evt)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)

	select {
	case p.queue <- retryItem{event: evt, attempts: 1, lastErr: err}:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", evt.Type)
		p.writeDeadLetter(evt, 1, err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryLoop() {
	defer p.wg.Done()
	for {
		select {
		case item := <-p.queue:
			p.retry(item)
		case <-p.shutdown:
			p.drain()
			return
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for item.attempts <= p.maxRetries {
		select {
		case <-time.After(CalculateRetryDelay(p.retryDelay, item.attempts)):
		case <-p.shutdown:
			p.writeDeadLetter(item.event, item.attempts, item.lastErr)
			return
		}

		err := p.inner.Publish(ctx, item.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", item.event.Type, "attempt", item.attempts)
			return
		}
		item.lastErr = err
		item.attempts++
		log.Warn(LogMsgEventRetryFailed, "event_type", item.event.Type, "attempt", item.attempts, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", item.attempts)
	p.writeDeadLetter(item.event, item.attempts, item.lastErr)
}

func (p *ResilientPublisher) drain() {
	count := 0
	for {
		select {
		case item := <-p.queue:
			p.writeDeadLetter(item.event, item.attempts, item.lastErr)
			count++
		default:
			if count > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", count)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(evt Event, attempts int, lastErr error) {
	log := logger.FromContext(context.Background())
	log.Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", attempts)
	if err := p.deadLetter.Write(evt, attempts, lastErr); err != nil {
		log.Error(LogMsgDeadLetterFailed, "error", err)
	}
}

// Shutdown stops retrying, dead-letters whatever is still queued and closes the file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
