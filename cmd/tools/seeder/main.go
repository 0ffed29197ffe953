package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedUsers(db)
	seedProducts(db)

	log.Println("Seeding completed successfully!")
}

func seedUsers(db *sql.DB) {
	users := []struct {
		Name     string
		Password string
		Roles    []string
	}{
		{"Admin", "Password@123", []string{"Admin"}},
		{"User", "Password@123", []string{"User"}},
		{"SuperAdmin", "Password@123", []string{"Admin", "User"}},
	}

	log.Println("Seeding Users...")
	for _, u := range users {
		hash, err := argon2id.CreateHash(u.Password, argon2id.DefaultParams)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.Name, err)
		}
		_, err = db.Exec(`
			INSERT INTO users (name, password_hash, roles)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING;
		`, u.Name, hash, pq.Array(u.Roles))
		if err != nil {
			log.Printf("Failed to seed user %s: %v", u.Name, err)
		}
	}
}

func seedProducts(db *sql.DB) {
	products := []struct {
		Name     string
		Price    int64
		Quantity int32
	}{
		{"Mechanical Keyboard", 185000, 25},
		{"Wireless Mouse", 95000, 40},
		{"USB-C Hub", 120000, 15},
		{"27 Inch Monitor", 2150000, 10},
		{"Laptop Stand", 75000, 30},
		{"Webcam 1080p", 310000, 18},
		{"Noise Cancelling Headset", 890000, 12},
		{"Desk Mat", 45000, 50},
	}

	log.Println("Seeding Products...")
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (name, price, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, quantity = EXCLUDED.quantity;
		`, p.Name, p.Price, p.Quantity)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}
}
