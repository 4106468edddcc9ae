// Command createadmin adds an ADMIN account. Signup never grants that role.
//
//	createadmin -email admin@example.com -password 'secret123'
//
// ADMIN_EMAIL and ADMIN_PASSWORD are used when the flags are omitted.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/app"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/config"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()
	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	files, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	svc := app.NewServices(cfg, db, files, nil, echo.New().Logger)
	u, err := svc.Accounts.CreateUser(ctx, *email, *password, model.RoleAdmin)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("created admin %s (id=%d)", u.Email, u.ID)
}
