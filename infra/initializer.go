package infra

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

// Initialize loads env files into the process environment, ".env" when none
// are named. Variables that are already set keep their values and a missing
// file only logs.
func Initialize(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		switch {
		case err == nil:
			log.Printf("Loaded environment from %s", file)
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("No %s file found; using environment variables", file)
		default:
			log.Printf("Failed to read %s: %v", file, err)
		}
	}
}
