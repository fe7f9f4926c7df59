package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/spigell/skillscout/cmd"
)

func main() {
	// Optional .env next to the binary. Absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
