// Package metrics defines the Prometheus collectors and the event subscriber that feeds them
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Progression Metrics
var (
	TasksToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksToggled,
			Help: HelpTextTasksToggled,
		},
		[]string{LabelDirection},
	)

	StreakChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStreakChanges,
			Help: HelpTextStreakChanges,
		},
		[]string{LabelChange},
	)

	MilestonesReached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMilestonesReached,
			Help: HelpTextMilestonesReached,
		},
		[]string{LabelKind},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	Evolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEvolutions,
			Help: HelpTextEvolutions,
		},
		[]string{LabelStage},
	)

	SealLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSealLevelUps,
			Help: HelpTextSealLevelUps,
		},
	)

	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceFailures,
			Help: HelpTextPersistenceFailures,
		},
		[]string{LabelOperation},
	)

	DayAdvances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDayAdvances,
			Help: HelpTextDayAdvances,
		},
		[]string{LabelResult},
	)

	AccountResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountResets,
			Help: HelpTextAccountResets,
		},
	)
)

// Shop Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsUsed,
			Help: HelpTextItemsUsed,
		},
		[]string{LabelItem},
	)

	ShopCoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShopCoinsSpent,
			Help: HelpTextShopCoinsSpent,
		},
	)

	StateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateCacheHits,
			Help: HelpTextStateCacheHits,
		},
		[]string{LabelResult},
	)
)
