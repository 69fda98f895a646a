package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository/postgres"
	"github.com/guilleguerrisi/tsb-backend-tienda/migrations"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Read migration file: an explicit path, or the embedded initial schema
	var script []byte
	source := migrations.InitSchema
	if len(os.Args) > 1 {
		source = os.Args[1]
		script, err = os.ReadFile(source)
	} else {
		script, err = migrations.FS.ReadFile(migrations.InitSchema)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration file: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("Applying %s...\n", source)
	if err := postgres.ApplySchema(ctx, db, string(script)); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration completed successfully!")
}
