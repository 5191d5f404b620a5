package main

import (
	"context"
	"log"

	"github.com/wintakam/wintakam/internal/server"
	"github.com/wintakam/wintakam/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
