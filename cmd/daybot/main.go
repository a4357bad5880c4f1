package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybot/core/cmd/daybot/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "daybot",
		Short: "Daybot personal assistant server",
		Long:  `Daybot is a personal productivity assistant that keeps a daily checklist, long-term goals, a day schedule and a mood journal in plain JSON files.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewHashTokenCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
