package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/guilleguerrisi/tsb-backend-tienda/internal/config"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/domain"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/repository/postgres"
	"github.com/guilleguerrisi/tsb-backend-tienda/internal/service"
)

func main() {
	buscar := flag.String("buscar", "", "free text; every token must match")
	grcat := flag.String("grcat", "", "category label, used when --buscar is empty")
	flag.Parse()

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
	items, err := service.NewCatalogService(repos, logger).Merchandise(context.Background(),
		domain.MerchandiseFilter{Search: *buscar, Category: *grcat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list merchandise: %v\n", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("No visible merchandise matches.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDESCRIPTION\tGROUP\tCOST\tIVA\tMARGIN\tPRICE")
	for _, m := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%d\n",
			m.CodigoInt, m.DescripcionCorta, m.Grupo, m.Costosiniva, m.Iva, m.Margen, m.Precio)
	}
	w.Flush()
	fmt.Printf("\n%d items\n", len(items))
}
