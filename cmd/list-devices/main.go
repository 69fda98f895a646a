package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, dbCfg.QueryTimeout, logger)

	devices, err := repos.AdminDevice.List(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list devices: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Admin devices:")
	fmt.Println()
	if len(devices) == 0 {
		fmt.Println("  No devices found. Allow one with:")
		fmt.Println("  go run ./cmd/add-device --name <device_id>")
		return
	}
	for _, d := range devices {
		fmt.Printf("  ID: %d  Name: %s\n", d.ID, d.Username)
	}
}
