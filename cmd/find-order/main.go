package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/notify"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository/postgres"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
)

func main() {
	client := flag.String("client", "", "find the latest order of this cliente_tienda instead")
	flag.Parse()

	if *client == "" && flag.NArg() < 1 {
		fmt.Println("Usage: go run ./cmd/find-order <order_id>")
		fmt.Println("       go run ./cmd/find-order --client <cliente_tienda>")
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
	orders := service.NewOrderService(repos, nil, "", logger)
	ctx := context.Background()

	var id int64
	if *client != "" {
		fmt.Printf("🔍 Searching latest order of client: %s\n\n", *client)
		ref, err := orders.LatestForClient(ctx, *client)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		id = ref.ID
	} else {
		id, err = strconv.ParseInt(flag.Arg(0), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid order id %q\n", flag.Arg(0))
			os.Exit(1)
		}
	}

	order, err := orders.Get(ctx, id)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	lines, total := orders.Summary(ctx, order.LineItems)
	payload := notify.Payload{OrderID: order.ID, Total: total, Lines: lines, Contact: order.Contact}

	fmt.Printf("✅ Order #%d\n", order.ID)
	fmt.Printf("   Date:     %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("   Client:   %s\n", order.ClientID)
	fmt.Printf("   Name:     %s\n", order.CustomerName)
	fmt.Printf("   Contact:  %s\n", order.Contact)
	fmt.Printf("   Message:  %s\n", order.Message)
	fmt.Printf("   Total:    $%s\n\n", notify.FormatAmount(total))
	fmt.Println(payload.ItemsText())
	fmt.Println()
	fmt.Printf("Chat: %s\n", notify.ChatLink(order.Contact, order.ID))
}
