package main

import (
	"log"

	"github.com/Food-order-lu/CRM-Task-manager/internal/auth"
	"github.com/Food-order-lu/CRM-Task-manager/internal/calendar"
	"github.com/Food-order-lu/CRM-Task-manager/internal/config"
	"github.com/Food-order-lu/CRM-Task-manager/internal/database"
	"github.com/Food-order-lu/CRM-Task-manager/internal/handlers"
	"github.com/Food-order-lu/CRM-Task-manager/internal/notion"
	"github.com/Food-order-lu/CRM-Task-manager/internal/routes"
	"github.com/Food-order-lu/CRM-Task-manager/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	st := store.New(db)

	creds, err := auth.ParseUsers(cfg.AuthUsers)
	if err != nil {
		log.Fatal("Failed to parse AUTH_USERS: ", err)
	}

	google := calendar.NewGoogle(cfg, st)
	syncer := calendar.NewSyncer(st, google.Resolve)
	mirror := notion.NewMirror(cfg, st)

	handlers.Init(cfg, st, syncer, google, mirror, creds)
	ginRoutes := routes.SetupRoutes()

	log.Printf("Server starting on port :%s", cfg.Port)
	log.Println("API endpoints:")
	log.Println("  GET/POST/PATCH/DELETE /api/crm[/:id]")
	log.Println("  GET/POST/PATCH/DELETE /api/projects[/:id]")
	log.Println("  GET    /api/projects/:id/tasks")
	log.Println("  GET/POST/PATCH/DELETE /api/tasks[/:id]")
	log.Println("  GET    /api/stats")
	log.Println("  POST   /api/auth/login")
	log.Println("  POST   /api/auth/verify-2fa")
	log.Println("  GET    /api/auth/qr-code")
	log.Println("  GET    /api/auth/google[/callback]")
	log.Println("  GET    /api/auth/status")
	log.Println("  POST   /api/sync/notion")
	log.Println("  GET    /api/backup")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
