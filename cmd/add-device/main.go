package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository/postgres"
)

func main() {
	name := flag.String("name", "", "device name to allow (as sent in device_id)")
	flag.Parse()

	if *name == "" && flag.NArg() > 0 {
		*name = flag.Arg(0)
	}
	if *name == "" {
		fmt.Println("Usage: go run ./cmd/add-device --name <device_id>")
		fmt.Println("Example: go run ./cmd/add-device --name tablet-caja")
		os.Exit(1)
	}

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

	device, err := repos.AdminDevice.Create(context.Background(), *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register device: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Device allowed: %s (id %d)\n", device.Username, device.ID)
	fmt.Println()
	fmt.Println("Check it with:")
	fmt.Printf("  curl -X POST -H 'Content-Type: application/json' -d '{\"device_id\":\"%s\"}' http://localhost:5000/api/verificar-dispositivo\n", device.Username)
}
