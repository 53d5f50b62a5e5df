package main

import (
	"log"

	"github.com/taskdeck/taskdeck/internal/app"

	_ "github.com/taskdeck/taskdeck/api" // swagger docs
)

//	@title			Taskdeck API
//	@version		0.1.0
//	@description	Multi-tenant task management with organizations, invites and role-based access control.
//	@BasePath		/api

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
