package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/osse101/Ascendant_Go/internal/domain"
	"github.com/osse101/Ascendant_Go/internal/progression"
	"github.com/osse101/Ascendant_Go/internal/validation"
)

// Loader reads and validates game tables
type Loader interface {
	Load(path string) (*Tables, error)
	Validate(tables *Tables) error
}

type tablesLoader struct {
	schemaValidator validation.SchemaValidator
	schemaPath      string
	validate        *validator.Validate
}

// NewLoader creates a loader that checks files against TablesSchemaPath
func NewLoader() Loader {
	return NewLoaderWithSchema(TablesSchemaPath)
}

// NewLoaderWithSchema creates a loader using a specific schema file.
// An empty schemaPath skips schema validation.
func NewLoaderWithSchema(schemaPath string) Loader {
	return &tablesLoader{
		schemaValidator: validation.NewSchemaValidator(),
		schemaPath:      schemaPath,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads, decodes and validates a tables file. The format follows the file extension.
func Load(path string) (*Tables, error) {
	return NewLoader().Load(path)
}

// Load reads a tables file, checks it against the schema and decodes it
func (l *tablesLoader) Load(path string) (*Tables, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadTablesFailed, err)
	}

	if l.schemaPath != "" {
		if err := l.checkSchema(data, format); err != nil {
			return nil, fmt.Errorf(ErrMsgSchemaValidationFmt, path, err)
		}
	}

	var tables Tables
	if err := decode(data, format, &tables); err != nil {
		return nil, fmt.Errorf(ErrMsgParseTablesFailedFmt, format, err)
	}

	if err := l.Validate(&tables); err != nil {
		return nil, err
	}
	return &tables, nil
}

// checkSchema decodes the raw document generically and validates its JSON form
func (l *tablesLoader) checkSchema(data []byte, format string) error {
	var raw map[string]any
	if err := decode(data, format, &raw); err != nil {
		return fmt.Errorf(ErrMsgParseTablesFailedFmt, format, err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeForSchemaFailed, err)
	}
	return l.schemaValidator.ValidateBytes(jsonData, l.schemaPath)
}

// Validate checks struct constraints and the cross-field rules the schema cannot express
func (l *tablesLoader) Validate(tables *Tables) error {
	if tables == nil {
		return fmt.Errorf(ErrFmtTablesNil, domain.ErrInvalidTables)
	}
	if err := l.validate.Struct(tables); err != nil {
		return fmt.Errorf(ErrMsgStructValidationFmt, domain.ErrInvalidTables, err)
	}

	if err := validateMilestones(tables.Milestones); err != nil {
		return err
	}
	if err := validateThresholds("path", tables.PathThresholds); err != nil {
		return err
	}
	if err := validateThresholds("character", tables.CharacterThresholds); err != nil {
		return err
	}
	if !tables.Rank.Validate() {
		return fmt.Errorf(ErrFmtRankTable, domain.ErrInvalidTables)
	}
	if err := validateShop(tables.Shop); err != nil {
		return err
	}
	return validatePaths(tables.Paths)
}

func validateMilestones(milestones []LevelMilestone) error {
	for i := 1; i < len(milestones); i++ {
		if milestones[i].Level <= milestones[i-1].Level {
			return fmt.Errorf(ErrFmtMilestoneOrder, domain.ErrInvalidTables, milestones[i].Level, milestones[i-1].Level)
		}
	}
	return nil
}

func validateThresholds(name string, thresholds []progression.StageThreshold) error {
	stages := domain.AllStages()
	if thresholds[0].MinLevel != 0 {
		return fmt.Errorf(ErrFmtThresholdsFirst, domain.ErrInvalidTables, name)
	}
	for i, t := range thresholds {
		if i >= len(stages) || t.Stage != stages[i] {
			expected := domain.EvolutionStage("")
			if i < len(stages) {
				expected = stages[i]
			}
			return fmt.Errorf(ErrFmtThresholdsStage, domain.ErrInvalidTables, name, i, t.Stage, expected)
		}
		if i > 0 && t.MinLevel <= thresholds[i-1].MinLevel {
			return fmt.Errorf(ErrFmtThresholdsOrder, domain.ErrInvalidTables, name, t.Stage)
		}
	}
	return nil
}

func validateShop(shop []domain.ShopItemTemplate) error {
	seen := make(map[string]bool, len(shop))
	for _, item := range shop {
		if seen[item.ID] {
			return fmt.Errorf(ErrFmtDuplicateShopItem, domain.ErrInvalidTables, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func validatePaths(paths []PathDef) error {
	keys := make(map[string]bool, len(paths))
	for _, p := range paths {
		if keys[p.Key] {
			return fmt.Errorf(ErrFmtDuplicatePath, domain.ErrInvalidTables, p.Key)
		}
		keys[p.Key] = true

		tasks := make(map[string]bool, len(p.Tasks))
		for _, t := range p.Tasks {
			if tasks[t.ID] {
				return fmt.Errorf(ErrFmtDuplicateTask, domain.ErrInvalidTables, p.Key, t.ID)
			}
			tasks[t.ID] = true

			subtasks := make(map[string]bool, len(t.Subtasks))
			for _, st := range t.Subtasks {
				if subtasks[st.ID] {
					return fmt.Errorf(ErrFmtDuplicateSubtask, domain.ErrInvalidTables, t.ID, st.ID)
				}
				subtasks[st.ID] = true
			}
		}
	}
	return nil
}

func formatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf(ErrMsgUnsupportedFormatFmt, filepath.Ext(path), domain.ErrInvalidTables)
	}
}

func decode(data []byte, format string, out any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatTOML:
		return toml.Unmarshal(data, out)
	default:
		return fmt.Errorf(ErrMsgUnsupportedFormatFmt, format, domain.ErrInvalidTables)
	}
}
