package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProducts(ctx, pool)

	log.Println("Seeding completed successfully!")
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) {
	products := []struct {
		Name     string
		Category string
		Price    string
	}{
		{"Coca-Cola 500ml", "Bebidas", "1.50"},
		{"Agua Mineral 1.5L", "Bebidas", "1.00"},
		{"Jugo de Naranja 1L", "Bebidas", "2.20"},
		{"Cerveza Quilmes 473ml", "Bebidas", "2.80"},
		{"Alfajor Jorgito", "Golosina", "0.80"},
		{"Chicles Beldent", "Golosina", "0.60"},
		{"Caramelos Sugus x10", "Golosina", "1.20"},
		{"Chocolate Milka 100g", "Golosina", "2.50"},
		{"Papas Lays 150g", "Snacks", "2.00"},
		{"Palitos Salados", "Snacks", "1.30"},
		{"Mani Japones 80g", "Snacks", "1.10"},
		{"Doritos Queso 90g", "Snacks", "2.40"},
		{"Pan Lactal", "Almacen", "1.90"},
		{"Yerba Mate 500g", "Almacen", "3.50"},
	}

	log.Println("Seeding Products...")
	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (name, category, unit_price, active)
			VALUES ($1, $2, $3, true)
			ON CONFLICT (name) DO UPDATE SET
				category = EXCLUDED.category,
				unit_price = EXCLUDED.unit_price,
				active = true,
				updated_at = NOW();
		`, p.Name, p.Category, p.Price)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Name, err)
		}
	}
}
