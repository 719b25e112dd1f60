package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/daylog/internal/server"
	"github.com/dmitrijs2005/daylog/internal/server/config"
)

func main() {

	// optional; real deployments set the environment directly
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
