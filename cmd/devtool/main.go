package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&MigrateCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&CheckTablesCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&SeedCommand{})
	registry.Register(&DoctorCommand{registry: registry})

	os.Exit(registry.Execute(os.Args[1:]))
}
