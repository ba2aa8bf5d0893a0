package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"coursebuilder/config"
	"coursebuilder/database"
	"coursebuilder/repository"
	"coursebuilder/services"
)

// Imports tasks from a CSV with the header
//
//	courseId,order,type,statement,options
//
// where options is a "|" separated list and a leading "*" marks a correct one.
func main() {
	path := flag.String("file", "tasks.csv", "CSV file to import")
	flag.Parse()

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}
	log.Printf("Total rows to import: %d", len(records)-1)

	tasks := services.NewTaskService(repository.NewGormStore(database.Database.Db))
	ctx := context.Background()

	inserted := 0
	rejected := 0
	skipped := 0
	for i, row := range records[1:] {
		req, err := parseRow(row, headerIndex)
		if err != nil {
			log.Printf("Row %d skipped: %v", i+2, err)
			skipped++
			continue
		}

		// Rows are applied one by one, so a later row may rely on an earlier one.
		if _, err := tasks.InsertTask(ctx, req); err != nil {
			log.Printf("Row %d rejected (%s): %v", i+2, services.KindOf(err), err)
			rejected++
			continue
		}
		inserted++
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Rejected: %d", rejected)
	log.Printf("Skipped: %d", skipped)
}

