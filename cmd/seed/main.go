package main

import (
	"fmt"
	"os"

	"amazonia/database"
	"amazonia/internal/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			fmt.Printf("Warning: No .env file found: %v\n", err)
		}
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		database.ConnectDatabase()
		if err := database.MigrateDatabase(); err != nil {
			zap.S().Fatalf("Error running migrations: %v", err)
		}
		if err := utils.SeedDatabase(database.DB); err != nil {
			zap.S().Fatalf("Error seeding database: %v", err)
		}
		zap.S().Info("Seeding completed")

	case "clear":
		database.ConnectDatabase()
		if err := utils.ClearDatabase(database.DB); err != nil {
			zap.S().Fatalf("Error clearing database: %v", err)
		}
		zap.S().Info("All collections cleared")

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Database utility tool for the Amazonia CMS")
	fmt.Println("\nUsage:")
	fmt.Println("  db-tool COMMAND")
	fmt.Println("\nCommands:")
	fmt.Println("  seed   Load categories, users and sample articles")
	fmt.Println("  clear  Remove all articles, categories and users")
	fmt.Println("  help   Show this help message")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE")
}
