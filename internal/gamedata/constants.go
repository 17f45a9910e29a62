package gamedata

// TablesSchemaPath is the JSON schema every tables file is checked against, whatever its format
const TablesSchemaPath = "configs/schemas/tables.schema.json"

// Supported table file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// File operation error messages
const (
	ErrMsgReadTablesFailed      = "failed to read tables file: %w"
	ErrMsgParseTablesFailedFmt  = "failed to parse %s tables: %w"
	ErrMsgUnsupportedFormatFmt  = "unsupported tables format %q: %w"
	ErrMsgSchemaValidationFmt   = "schema validation failed for %s: %w"
	ErrMsgStructValidationFmt   = "%w: %v"
	ErrMsgEncodeForSchemaFailed = "failed to encode tables for schema validation: %w"
)

// Validation error fragments, used as "%w: <fragment>"
const (
	ErrFmtTablesNil         = "%w: tables are nil"
	ErrFmtMilestoneOrder    = "%w: milestone level %d is not above %d"
	ErrFmtThresholdsFirst   = "%w: %s thresholds must start at level 0"
	ErrFmtThresholdsStage   = "%w: %s thresholds entry %d is %q, expected %q"
	ErrFmtThresholdsOrder   = "%w: %s thresholds must strictly ascend at %q"
	ErrFmtRankTable         = "%w: rank table needs 13 strictly ascending bands and a positive step"
	ErrFmtDuplicateShopItem = "%w: duplicate shop item '%s'"
	ErrFmtDuplicatePath     = "%w: duplicate path '%s'"
	ErrFmtDuplicateTask     = "%w: path '%s' has duplicate task '%s'"
	ErrFmtDuplicateSubtask  = "%w: task '%s' has duplicate subtask '%s'"
	ErrFmtItemNotFound      = "%w: %s"
	ErrFmtPathNotFound      = "%w: %s"
)

// Log messages
const (
	LogMsgTablesLoaded   = "Game tables loaded"
	LogMsgTablesDefault  = "No tables file configured, using built-in tables"
	LogMsgFuzzyItemMatch = "Resolved shop item by fuzzy match"
)
