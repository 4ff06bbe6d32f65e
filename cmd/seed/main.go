package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var dataSource = flag.String("dsn", "host=localhost port=5432 user=shopfabric password=shopfabric dbname=catalog sslmode=disable", "catalog database DSN")

type DB struct {
	*sql.DB
}

func main() {
	flag.Parse()

	db, err := sql.Open("postgres", *dataSource)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("cannot connect to catalog database:", err)
	}

	fmt.Println("connected to catalog database")

	database := &DB{db}
	if err := database.SeedProducts(); err != nil {
		log.Fatal("error seeding products:", err)
	}

	fmt.Println("products seeded successfully")
}

// SeedProducts inserts a handful of sample catalog products, for local
// development and demo runs of the Orchestrator's order-creation flow.
func (db *DB) SeedProducts() error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	var commitErr error
	defer func() {
		if commitErr != nil {
			tx.Rollback()
		} else {
			tx.Commit()
		}
	}()

	products := []struct {
		Name        string
		Description string
		PriceCents  int64
		Inventory   int
	}{
		{"Mechanical Keyboard", "Hot-swappable 75% mechanical keyboard", 8999, 40},
		{"Wireless Mouse", "2.4GHz wireless mouse with silent clicks", 2499, 120},
		{"27in Monitor", "27-inch 1440p IPS monitor, 144Hz", 29999, 15},
		{"USB-C Dock", "10-port USB-C docking station", 6499, 60},
		{"Standing Desk", "Electric height-adjustable desk frame", 34999, 8},
		{"Desk Lamp", "Dimmable LED desk lamp with USB charging port", 1999, 75},
	}

	for _, p := range products {
		if _, err := tx.Exec(`
			INSERT INTO products (name, description, price_cents, inventory, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, $5, $5)
			ON CONFLICT DO NOTHING`,
			p.Name, p.Description, p.PriceCents, p.Inventory, time.Now()); err != nil {
			commitErr = fmt.Errorf("insert product %s: %w", p.Name, err)
			return commitErr
		}
	}

	fmt.Printf("seeded %d products\n", len(products))
	return nil
}
