package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/workload-api-go/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <keyName>")
		os.Exit(1)
	}

	keyName := os.Args[1]
	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	apiKey := auth.GenerateHMACKey(keyName)
	fmt.Printf("Generated Key for %s:\n%s\n", keyName, apiKey)
}
