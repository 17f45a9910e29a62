package main

import (
	"fmt"
)

// DoctorCommand runs the offline checks in one go
type DoctorCommand struct {
	registry *Registry
}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (tables + storage)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false
	checks := []struct {
		name string
		args []string
	}{
		{"check-tables", nil},
		{"wait-for-db", []string{"-retries", "1"}},
	}

	for _, check := range checks {
		cmd, ok := c.registry.Get(check.name)
		if !ok {
			continue
		}
		if err := cmd.Run(check.args); err != nil {
			PrintError("%s failed: %v", check.name, err)
			hasError = true
		} else {
			PrintSuccess("%s OK", check.name)
		}
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
