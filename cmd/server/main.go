package main

import (
	"context"
	"log"
	"os"

	"github.com/salaysay-tracker/backend/internal/server"
	"github.com/salaysay-tracker/backend/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Printf("config error: %v", err)
		return
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
