package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/event"
)

func TestEventMetricsCollector_RecordsShopEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	boughtBefore := testutil.ToFloat64(ItemsBought.WithLabelValues("xp_scroll"))
	spentBefore := testutil.ToFloat64(ShopCoinsSpent)

	require.NoError(t, bus.Publish(context.Background(), event.NewItemPurchasedEvent("u1", "xp_scroll", 3, 345)))

	assert.Equal(t, boughtBefore+3, testutil.ToFloat64(ItemsBought.WithLabelValues("xp_scroll")))
	assert.Equal(t, spentBefore+345, testutil.ToFloat64(ShopCoinsSpent))
}

func TestEventMetricsCollector_StreakLabels(t *testing.T) {
	c := NewEventMetricsCollector()
	identity := domain.Identity{UserID: "u1", ID: "i1", PathKey: "athlete", Streak: 4}

	tests := []struct {
		name  string
		evt   event.Event
		label string
	}{
		{"increment", event.NewStreakChangedEvent(identity, 1), ChangeIncrement},
		{"decrement", event.NewStreakChangedEvent(identity, -1), ChangeDecrement},
		{"reset", event.NewStreakResetEvent(domain.Identity{UserID: "u1"}, 4), ChangeReset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StreakChanges.WithLabelValues(tt.label))
			require.NoError(t, c.HandleEvent(context.Background(), tt.evt))
			assert.Equal(t, before+1, testutil.ToFloat64(StreakChanges.WithLabelValues(tt.label)))
		})
	}
}

func TestEventMetricsCollector_MilestoneKinds(t *testing.T) {
	c := NewEventMetricsCollector()
	subBefore := testutil.ToFloat64(MilestonesReached.WithLabelValues(KindSubMilestone))
	finalBefore := testutil.ToFloat64(MilestonesReached.WithLabelValues(KindFinalMilestone))

	award := domain.MilestoneAward{Streak: 7, SubMilestone: true, FinalMilestone: true}
	require.NoError(t, c.HandleEvent(context.Background(), event.NewMilestoneEvent(domain.Identity{}, award)))

	assert.Equal(t, subBefore+1, testutil.ToFloat64(MilestonesReached.WithLabelValues(KindSubMilestone)))
	assert.Equal(t, finalBefore+1, testutil.ToFloat64(MilestonesReached.WithLabelValues(KindFinalMilestone)))
}

func TestEventMetricsCollector_DecodesSerializedPayloads(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(TasksToggled.WithLabelValues(DirectionCompleted))

	evt := event.Event{
		Type:    event.TaskToggled,
		Payload: map[string]any{"user_id": "u1", "task_id": "t1", "completed": true},
	}
	require.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, before+1, testutil.ToFloat64(TasksToggled.WithLabelValues(DirectionCompleted)))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	c := NewEventMetricsCollector()
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ItemUsed)))

	evt := event.Event{Type: event.ItemUsed, Payload: make(chan int)}
	require.NoError(t, c.HandleEvent(context.Background(), evt))

	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ItemUsed))))
}
