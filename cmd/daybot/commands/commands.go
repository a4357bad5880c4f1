package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Daybot API server",
		Long:  "Start the Daybot API server with all configured routes, middleware and digest jobs",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the data migration command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Normalize legacy data files",
		Long:  "Rewrite the stored JSON files into the current format: canonical priority labels, numeric mood values and goal progress fields",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration()
		},
	}
}

// NewHashTokenCommand creates the owner token hashing command
func NewHashTokenCommand() *cobra.Command {
	hashCmd := &cobra.Command{
		Use:   "hash-token",
		Short: "Hash an owner token",
		Long:  "Print the bcrypt hash of an owner token for the OWNER_TOKEN_HASH setting",
		Run: func(cmd *cobra.Command, args []string) {
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				log.Fatal("Token is required")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash token: %v", err)
			}

			fmt.Println(string(hash))
		},
	}

	hashCmd.Flags().String("token", "", "Owner token to hash (required)")

	return hashCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Daybot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Daybot Core v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting Daybot API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server shutdown failed", "error", err)
	}
}

func runMigration() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	results, err := migrateDataFiles(cfg.Storage)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	for _, r := range results {
		if r.Skipped {
			fmt.Printf("%s: not found, skipped\n", r.Path)
			continue
		}
		fmt.Printf("%s: %d records, %d rewritten\n", r.Path, r.Records, r.Changed)
	}
}
