package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/novamkr/web-vitals/pkg/server"
	"github.com/novamkr/web-vitals/pkg/services/config"
	"github.com/novamkr/web-vitals/pkg/services/review"
	"github.com/novamkr/web-vitals/pkg/store/duckdb"
	reportstore "github.com/novamkr/web-vitals/pkg/store/duckdb/report"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the review web server for saved reports",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a webvitals config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(cfg.StoreSettings())
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	reviews, err := review.NewManager(store)
	if err != nil {
		return fmt.Errorf("failed to create review manager: %w", err)
	}

	addr := cfg.Addr()
	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	logger.Info().Msgf("Report store at `%s` loaded.", cfg.Store.Path)

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reviews: reviews,
			Logger:  logger,
		},
	})
	return api.Start()
}
