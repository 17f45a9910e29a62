package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progression metric names
const (
	MetricNameTasksToggled        = "tasks_toggled_total"
	MetricNameStreakChanges       = "streak_changes_total"
	MetricNameMilestonesReached   = "milestones_reached_total"
	MetricNameLevelUps            = "level_ups_total"
	MetricNameEvolutions          = "evolutions_total"
	MetricNameSealLevelUps        = "seal_level_ups_total"
	MetricNamePersistenceFailures = "persistence_failures_total"
	MetricNameDayAdvances         = "day_advances_total"
	MetricNameAccountResets       = "account_resets_total"
)

// Shop metric names
const (
	MetricNameItemsBought     = "items_bought_total"
	MetricNameItemsUsed       = "items_used_total"
	MetricNameShopCoinsSpent  = "shop_coins_spent_total"
	MetricNameStateCacheHits  = "state_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progression metric help text
const (
	HelpTextTasksToggled        = "Total number of task toggles by direction"
	HelpTextStreakChanges       = "Total number of streak changes by kind"
	HelpTextMilestonesReached   = "Total number of milestone awards by kind"
	HelpTextLevelUps            = "Total number of path level ups"
	HelpTextEvolutions          = "Total number of evolution stage changes by stage"
	HelpTextSealLevelUps        = "Total number of seal level ups"
	HelpTextPersistenceFailures = "Total number of background persistence failures by operation"
	HelpTextDayAdvances         = "Total number of per-user day advances by result"
	HelpTextAccountResets       = "Total number of account resets"
)

// Shop metric help text
const (
	HelpTextItemsBought    = "Total number of items bought"
	HelpTextItemsUsed      = "Total number of items used"
	HelpTextShopCoinsSpent = "Total coins spent in the shop"
	HelpTextStateCacheHits = "Day state cache lookups by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelDirection = "direction"
	LabelChange    = "change"
	LabelKind      = "kind"
	LabelStage     = "stage"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Label values
const (
	DirectionCompleted   = "completed"
	DirectionUncompleted = "uncompleted"

	ChangeIncrement = "increment"
	ChangeDecrement = "decrement"
	ChangeReset     = "reset"

	KindSubMilestone   = "sub"
	KindFinalMilestone = "final"

	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultSkipped = "skipped"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Event payload could not be decoded"
)
