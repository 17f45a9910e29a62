package metrics

import (
	"context"

	"github.com/osse101/Ascendant_Go/internal/event"
	"github.com/osse101/Ascendant_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		logger.FromContext(ctx).Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	}
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.TaskToggled:
		p, err := event.DecodePayload[event.TaskToggledPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		direction := DirectionUncompleted
		if p.Completed {
			direction = DirectionCompleted
		}
		TasksToggled.WithLabelValues(direction).Inc()

	case event.IdentityLeveledUp:
		LevelUps.Inc()

	case event.IdentityEvolved:
		p, err := event.DecodePayload[event.EvolutionPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Evolutions.WithLabelValues(string(p.Stage)).Inc()

	case event.StreakChanged:
		p, err := event.DecodePayload[event.StreakChangedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		StreakChanges.WithLabelValues(streakChangeLabel(p)).Inc()

	case event.MilestoneReached:
		p, err := event.DecodePayload[event.MilestonePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		if p.Award.SubMilestone {
			MilestonesReached.WithLabelValues(KindSubMilestone).Inc()
		}
		if p.Award.FinalMilestone {
			MilestonesReached.WithLabelValues(KindFinalMilestone).Inc()
		}

	case event.SealLeveledUp:
		SealLevelUps.Inc()

	case event.ItemPurchased:
		p, err := event.DecodePayload[event.ItemPurchasedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ItemsBought.WithLabelValues(p.TemplateID).Add(float64(p.Quantity))
		ShopCoinsSpent.Add(float64(p.TotalCost))

	case event.ItemUsed:
		p, err := event.DecodePayload[event.ItemUsedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		ItemsUsed.WithLabelValues(p.TemplateID).Inc()

	case event.AccountReset:
		AccountResets.Inc()
	}
	return nil
}

func streakChangeLabel(p event.StreakChangedPayloadV1) string {
	switch {
	case p.Change > 0:
		return ChangeIncrement
	case p.Reset:
		return ChangeReset
	default:
		return ChangeDecrement
	}
}
