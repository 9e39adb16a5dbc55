package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"smartpark/internal/config"
	libdb "smartpark/libs/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS parking_slots (
		slot_number INT PRIMARY KEY,
		status VARCHAR(16) NOT NULL DEFAULT 'available'
			CHECK (status IN ('available', 'occupied'))
	)`,
	`CREATE TABLE IF NOT EXISTS cars (
		plate_number VARCHAR(20) PRIMARY KEY,
		driver_name VARCHAR(100) NOT NULL,
		phone_number VARCHAR(20) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parking_sessions (
		id BIGSERIAL PRIMARY KEY,
		plate_number VARCHAR(20) NOT NULL REFERENCES cars (plate_number),
		slot_number INT NOT NULL REFERENCES parking_slots (slot_number),
		entry_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		exit_time TIMESTAMPTZ NULL,
		duration_hours INT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		session_id BIGINT NOT NULL REFERENCES parking_sessions (id),
		amount NUMERIC(10, 2) NOT NULL,
		payment_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id BIGINT NOT NULL REFERENCES users (id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS parking_sessions_open_slot
		ON parking_sessions (slot_number) WHERE exit_time IS NULL`,
}

func main() {
	slotCount := flag.Int("slots", 20, "number of parking slots to seed when the table is empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := libdb.NewPostgresDB(cfg.Database.DSN, libdb.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}

	var existing int
	if err := pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM parking_slots`).Scan(&existing); err != nil {
		log.Fatalf("count slots: %v", err)
	}
	if existing > 0 {
		fmt.Printf("schema applied, %d slots already present\n", existing)
		return
	}

	for n := 1; n <= *slotCount; n++ {
		if _, err := pool.ExecContext(ctx,
			`INSERT INTO parking_slots (slot_number, status) VALUES ($1, 'available')`, n,
		); err != nil {
			log.Fatalf("seed slot %d: %v", n, err)
		}
	}
	fmt.Printf("schema applied, seeded %d parking slots\n", *slotCount)
}
