// scripts/creds-check/main.go
//
// Verifies that a Google service account key file parses and can mint an
// access token, without starting the server.
//
// Usage:
//   go run scripts/creds-check/main.go path/to/service-account.json

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	speechapi "google.golang.org/api/speech/v1"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/creds-check/main.go path/to/service-account.json")
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read credentials file %q: %v", path, err)
	}

	config, err := google.JWTConfigFromJSON(data, speechapi.CloudPlatformScope)
	if err != nil {
		log.Fatalf("Failed to parse credentials: %v\nMake sure %q is a service account key file.", err, path)
	}

	fmt.Printf("Service account: %s\n", config.Email)

	token, err := config.TokenSource(context.Background()).Token()
	if err != nil {
		log.Fatalf("Failed to mint access token: %v", err)
	}

	fmt.Printf("Token OK, expires %s\n", token.Expiry.Format("2006-01-02 15:04:05"))
}
