// feedback-form is the terminal feedback form.
//
// RUNNING:
//
//	go run ./cmd/feedback-form                       # interactive form
//	go run ./cmd/feedback-form list                  # print every entry
//	go run ./cmd/feedback-form submit --name Ann --email ann@example.com --message "Nice"
//
// The API address comes from --api-url, then --config, then the
// FEEDBACK_API_URL environment variable (a .env file in the working
// directory is read first).
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; only a malformed one is worth reporting.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		// errFailed means the outcome is already on stdout.
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
