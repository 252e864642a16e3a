package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/margauxcellars/cellar-backend/internal/users"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	"github.com/margauxcellars/cellar-backend/pkg/db"
	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
	"github.com/margauxcellars/cellar-backend/pkg/security"
)

// Creates a staff account. There is no self-service registration; operators
// provision accounts with this tool.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "useradd"})

	_ = godotenv.Load()

	email := flag.String("email", "", "staff email address")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password")
	language := flag.String("language", "en", "preferred language")
	flag.Parse()

	if *email == "" || *password == "" {
		logg.Error(ctx, "both -email and -password are required", nil)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	user := &models.User{
		Email:        *email,
		PasswordHash: hash,
		DisplayName:  *name,
		Language:     *language,
	}
	if err := users.NewRepository(dbClient.DB()).Create(ctx, user); err != nil {
		logg.Error(ctx, "failed to create user", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"user_id": user.ID, "email": user.Email})
	logg.Info(ctx, "staff account created")
}
