package main

import (
	"flag"
	"log"

	"github.com/SolaireOfAndor/Summit-sub004/internal"
)

func main() {
	envPath := flag.String("env", "", "path to .env file (default: ./.env)")
	flag.Parse()

	application, err := internal.NewApp(*envPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application run failed: %v", err)
	}
}
