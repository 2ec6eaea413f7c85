package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	redis "github.com/redis/go-redis/v9"
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

	seedProducts(db)

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		seedSettings(redisURL)
	} else {
		log.Println("REDIS_URL not set, skipping settings seed")
	}

	log.Println("Seeding completed successfully!")
}

func seedProducts(db *sql.DB) {
	products := []struct {
		Slug      string
		Kind      string
		BasePrice string
		PixPrice  string // empty means no individual pix price
	}{
		{"camiseta-basica-preta", "simple", "79.90", "71.90"},
		{"caneca-esmaltada", "simple", "49.90", ""},
		{"tenis-corrida-leve", "simple", "299.90", "269.90"},
		{"fone-bluetooth", "simple", "199.90", ""},
		{"mochila-urbana", "simple", "189.90", "170.90"},
		{"smartwatch-fit", "simple", "599.00", ""},
		{"garrafa-termica", "simple", "89.90", "80.90"},
		{"livro-receitas", "simple", "59.90", ""},
		{"jaqueta-corta-vento", "variable", "0", ""},
		{"bermuda-moletom", "variable", "0", ""},
	}

	fmt.Println("Seeding Products...")
	prodIDs := make(map[string]string)
	for _, p := range products {
		var pixPrice any
		if p.PixPrice != "" {
			pixPrice = p.PixPrice
		}
		var id string
		err := db.QueryRow(`
			INSERT INTO products (slug, kind, base_price, pix_price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO UPDATE SET
				kind = EXCLUDED.kind,
				base_price = EXCLUDED.base_price,
				pix_price = EXCLUDED.pix_price
			RETURNING id;
		`, p.Slug, p.Kind, p.BasePrice, pixPrice).Scan(&id)
		if err != nil {
			log.Printf("Failed to seed product %s: %v", p.Slug, err)
			continue
		}
		prodIDs[p.Slug] = id
	}

	variants := []struct {
		Product   string
		BasePrice string
		PixPrice  string
		SortOrder int
	}{
		{"jaqueta-corta-vento", "249.90", "224.90", 1},
		{"jaqueta-corta-vento", "269.90", "", 2},
		{"jaqueta-corta-vento", "289.90", "260.90", 3},
		{"bermuda-moletom", "119.90", "", 1},
		{"bermuda-moletom", "129.90", "116.90", 2},
	}

	fmt.Println("Seeding Variants...")
	for _, v := range variants {
		prodID, ok := prodIDs[v.Product]
		if !ok {
			log.Printf("Missing product ID for %s", v.Product)
			continue
		}
		var pixPrice any
		if v.PixPrice != "" {
			pixPrice = v.PixPrice
		}
		_, err := db.Exec(`
			INSERT INTO product_variants (product_id, base_price, pix_price, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (product_id, sort_order) DO UPDATE SET
				base_price = EXCLUDED.base_price,
				pix_price = EXCLUDED.pix_price;
		`, prodID, v.BasePrice, pixPrice, v.SortOrder)
		if err != nil {
			log.Printf("Failed to seed variant for %s: %v", v.Product, err)
		}
	}
}

// seedSettings writes sparse override documents so a fresh install renders
// something visible without a trip through the admin API.
func seedSettings(redisURL string) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse redis url: %v", err)
		return
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to ping redis: %v", err)
		return
	}

	prefix := os.Getenv("SETTINGS_KEY_PREFIX")
	if prefix == "" {
		prefix = "settings"
	}

	overrides := map[string]map[string]any{
		"pricing/global": {
			"global_discount": "5",
			"show_in_gallery": "1",
		},
		"installments/rules": {
			"enabled":          "1",
			"max_installments": 12,
			"show_table":       "1",
		},
	}

	fmt.Println("Seeding Settings...")
	for domain, values := range overrides {
		data, err := json.Marshal(values)
		if err != nil {
			log.Printf("Failed to marshal settings %s: %v", domain, err)
			continue
		}
		if err := client.Set(ctx, prefix+":"+domain, data, 0).Err(); err != nil {
			log.Printf("Failed to seed settings %s: %v", domain, err)
		}
	}
}
