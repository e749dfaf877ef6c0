package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"healio/database"
	"healio/internal/config"
	"healio/internal/logger"
	"healio/internal/utils"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env", "../../.env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	migrate := seedCmd.Bool("migrate", true, "Run migrations before seeding")
	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	log, err := logger.New(os.Getenv("APP_ENV"), "info")
	if err != nil {
		log, _ = zap.NewDevelopment()
	}
	defer log.Sync()

	db, err := database.Connect(config.DBFromEnv(), log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		if *migrate {
			if err := database.Migrate(db, log); err != nil {
				log.Fatal("migration failed", zap.Error(err))
			}
		}
		if _, err := utils.SeedFoods(ctx, db, log); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
	case "clear":
		clearCmd.Parse(os.Args[2:])
		if _, err := utils.ClearFoods(ctx, db, log); err != nil {
			log.Fatal("clear failed", zap.Error(err))
		}
	default:
		printHelp()
		os.Exit(1)
	}

	count, err := utils.CountFoods(ctx, db)
	if err != nil {
		log.Fatal("count failed", zap.Error(err))
	}
	log.Info("foods in catalog", zap.Int64("count", count))
}

func printHelp() {
	fmt.Println("Usage: seed <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  seed     Load the starter food catalog (skips foods already present)")
	fmt.Println("    --migrate    Run migrations first (default true)")
	fmt.Println("  clear    Remove the starter foods")
}
