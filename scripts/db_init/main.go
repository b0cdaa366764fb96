package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/worldreach/careers/db"
	"github.com/worldreach/careers/internal/db"
	"github.com/worldreach/careers/internal/repository/sqlite"
	"github.com/worldreach/careers/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	ctx := context.Background()

	database, err := db.New(ctx, getEnv("CAREERS_DATABASE_PATH", "careers.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// run migrations and seed using internal/db.Migrate
	if err := db.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	// create the admin account when a password is provided and none exists
	if password := os.Getenv("CAREERS_ADMIN_PASSWORD"); password != "" {
		repo := sqlite.New(database, nil)
		n, err := repo.CountAdmins(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Admin count error: %v\n", err)
			os.Exit(1)
		}
		if n == 0 {
			username := getEnv("CAREERS_ADMIN_USERNAME", "admin")
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Password hash error: %v\n", err)
				os.Exit(1)
			}
			if _, err := repo.CreateAdmin(ctx, &models.Admin{Username: username, Role: "administrator", PasswordHash: string(hash)}); err != nil {
				fmt.Fprintf(os.Stderr, "Admin create error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Created admin account %q.\n", username)
		}
	}

	fmt.Println("Database initialized successfully.")
}
