package main

import (
	"flag"
	"log"

	"github.com/SolaireOfAndor/Summit-sub004/internal"
)

func main() {
	envPath := flag.String("env", "", "path to .env file (default: ./.env)")
	flag.Parse()

	relay, err := internal.NewRelayApp(*envPath)
	if err != nil {
		log.Fatalf("Failed to initialize mail relay: %v", err)
	}

	if err := relay.Run(); err != nil {
		log.Fatalf("Mail relay run failed: %v", err)
	}
}
