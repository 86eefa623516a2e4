// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/census/internal/dataset"
)

// Food represents a food record from the database
type Food struct {
	ID             int64
	Name           string
	Classification string
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview reclassification without executing")
	flag.Parse()

	// Find census database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".census", "census.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Classifications are derived when a food row is first created, so rows
	// stored before the classifier learned a food keep their old grouping.
	foods, err := findFoodsToReclassify(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding foods: %v\n", err)
		os.Exit(1)
	}

	if len(foods) == 0 {
		fmt.Println("No foods found to reclassify")
		return
	}

	fmt.Printf("Found %d food(s) to reclassify:\n\n", len(foods))

	for _, food := range foods {
		fmt.Printf("  %d: %s\n", food.ID, food.Name)
		fmt.Printf("    -> %s => %s\n", food.Classification, dataset.ClassifyFood(food.Name))
		fmt.Println()
	}

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing reclassification ===")
	fmt.Println()

	updated := 0
	for _, food := range foods {
		_, err := db.Exec(
			"UPDATE foods SET classification = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			dataset.ClassifyFood(food.Name), food.ID,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error updating %d: %v\n", food.ID, err)
			continue
		}

		fmt.Printf("✓ Reclassified %s -> %s\n", food.Name, dataset.ClassifyFood(food.Name))
		updated++
	}

	fmt.Printf("\n=== Reclassification complete: %d/%d foods updated ===\n", updated, len(foods))
}

func findFoodsToReclassify(db *sql.DB) ([]Food, error) {
	rows, err := db.Query("SELECT id, name, classification FROM foods ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		var f Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Classification); err != nil {
			return nil, err
		}

		// Only include foods whose stored grouping disagrees with the classifier
		if dataset.ClassifyFood(f.Name) != f.Classification {
			foods = append(foods, f)
		}
	}

	return foods, rows.Err()
}
