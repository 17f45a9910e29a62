package main

import (
	"fmt"

	"github.com/osse101/Ascendant_Go/internal/config"
	"github.com/osse101/Ascendant_Go/internal/gamedata"
)

// CheckTablesCommand validates a tables file against the schema and the loader's rules
type CheckTablesCommand struct{}

func (c *CheckTablesCommand) Name() string {
	return "check-tables"
}

func (c *CheckTablesCommand) Description() string {
	return "Validate a game tables file (defaults to TABLES_PATH)"
}

func (c *CheckTablesCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := cfg.TablesPath
	if len(args) > 0 {
		path = args[0]
	}
	PrintHeader(fmt.Sprintf("Checking %s", path))

	tables, err := gamedata.NewLoaderWithSchema(cfg.TablesSchemaPath).Load(path)
	if err != nil {
		return err
	}

	tasks := 0
	for _, p := range tables.Paths {
		tasks += len(p.Tasks)
	}
	PrintSuccess("%d paths, %d task templates, %d shop items, %d milestones",
		len(tables.Paths), tasks, len(tables.Shop), len(tables.Milestones))
	return nil
}
