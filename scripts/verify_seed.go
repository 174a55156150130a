package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Prints per-table row counts and checks the outcome price sums after a
// seeding run. Run with: go run scripts/verify_seed.go
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
	}

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	tables := []string{"tags", "events", "conditions", "event_tags", "markets", "outcomes"}
	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Fatalf("Failed to count %s: %v", table, err)
		}
		fmt.Printf("%-12s %d rows\n", table, count)
	}

	// Every condition's outcome prices should sum to 1.0 within rounding
	rows, err := db.Query(`
		SELECT condition_id, SUM(current_price) AS total
		FROM outcomes
		GROUP BY condition_id
		HAVING ABS(SUM(current_price) - 1.0) > 0.0002`)
	if err != nil {
		log.Fatalf("Failed to check price sums: %v", err)
	}
	defer rows.Close()

	bad := 0
	for rows.Next() {
		var conditionID string
		var total float64
		if err := rows.Scan(&conditionID, &total); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		log.Printf("Condition %s price sum is %f", conditionID, total)
		bad++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate rows: %v", err)
	}

	if bad > 0 {
		log.Fatalf("%d conditions have a bad price sum", bad)
	}
	log.Println("All outcome price sums check out")
}
