package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/app"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	a.StartNotifier(ctx)
	if err := a.Run(ctx); err != nil {
		log.Printf("server: %v", err)
	}
}
