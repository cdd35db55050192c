package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelsmp/discord-whitelist/pkg/app/gateway"
	"github.com/angelsmp/discord-whitelist/pkg/config"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Optional .env for local development; production secrets come from the
	// real environment
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := gateway.New(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Gateway exited with error: %v\n", err)
		os.Exit(1)
	}
}
