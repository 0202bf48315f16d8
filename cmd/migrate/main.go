package main

import (
	"fmt"
	"log"
	"os"

	"github.com/StefanHaring/InkPress/internal/pkg/database"
	"github.com/StefanHaring/InkPress/internal/pkg/env"
)

func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "up":
		database.SetupDatabase()
		if err := database.Migrate(database.GetDB()); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Schema is up to date")

	case "status":
		database.SetupDatabase()
		db := database.GetDB()
		for _, table := range []string{"users", "categories", "blog_posts"} {
			state := "missing"
			if db.Migrator().HasTable(table) {
				state = "present"
			}
			log.Printf("Table %-12s %s", table, state)
		}

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  up     - Apply the schema to the configured database")
	fmt.Println("  status - Show which tables exist")
}
