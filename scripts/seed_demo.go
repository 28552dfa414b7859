package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/khoahotran/assistant-relay/adapters/persistence"
	authUC "github.com/khoahotran/assistant-relay/internal/application/usecase/auth"
	syncUC "github.com/khoahotran/assistant-relay/internal/application/usecase/sync"
	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

// Seeds a demo account with a small workspace so the chat can be tried right away.
func main() {
	fmt.Println("adding demo user into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	email := os.Getenv("DEMO_EMAIL")
	password := os.Getenv("DEMO_PASSWORD")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)

	if err := persistence.RunMigrations("migrations", cfg.DB.DSN, appLogger); err != nil {
		log.Fatalf("cannot migrate DB: %v", err)
	}
	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	userRepo := persistence.NewPostgresUserRepo(pool, appLogger)

	u, err := authUC.NewRegisterUseCase(userRepo, appLogger).Execute(ctx, authUC.RegisterInput{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			log.Fatalf("user '%s' already exists", email)
		}
		log.Fatalf("cannot add user: %v", err)
	}

	syncUseCase := syncUC.NewSyncUseCase(persistence.NewPostgresWorkspaceRepo(pool, appLogger), appLogger)
	_, err = syncUseCase.Save(ctx, u.ID, workspace.Bundle{
		Todos: []workspace.Todo{
			{Date: "2024-5-6", Text: "Prepare weekly report", Completed: true},
			{Date: "2024-5-7", Text: "Book dentist appointment"},
		},
		Plans: []workspace.Plan{{
			Title: "Learn Go",
			Subtasks: []workspace.Subtask{
				{Text: "Finish the tour", Completed: true},
				{Text: "Build a small HTTP service"},
			},
		}},
		Notes: []workspace.Note{{Content: "Ideas for the team offsite: hiking, cooking class."}},
	})
	if err != nil {
		log.Fatalf("cannot seed workspace: %v", err)
	}

	fmt.Printf("added demo user '%s' successfully!\n", u.Email)
}
