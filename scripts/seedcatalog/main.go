package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"licenseshop/internal/config"
	"licenseshop/internal/model"
	"licenseshop/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type seedProduct struct {
	slug        string
	name        string
	description string
	basePrice   int64
	variants    []model.VariantInput
	// skus maps a price to option values by variant name, e.g.
	// {"License Term": "1 month", "Edition": "Pro"}.
	skus []seedSKU
}

type seedSKU struct {
	code      string
	selection map[string]string
	price     int64
}

var catalog = []seedProduct{
	{
		slug:        "vpn-pro",
		name:        "VPN Pro",
		description: "Personal VPN with unlimited bandwidth",
		basePrice:   150000,
		variants: []model.VariantInput{
			{Name: "License Term", Position: 0, Options: []string{"1 month", "3 months", "12 months"}},
			{Name: "Devices", Position: 1, Options: []string{"1 device", "5 devices"}},
		},
		skus: []seedSKU{
			{code: "vpn-pro-1 M-1 D", selection: map[string]string{"License Term": "1 month", "Devices": "1 device"}, price: 90000},
			{code: "vpn-pro-12-5 D", selection: map[string]string{"License Term": "12 months", "Devices": "5 devices"}, price: 350000},
		},
	},
	{
		slug:        "office-suite",
		name:        "Office Suite",
		description: "Full productivity suite license",
		basePrice:   220000,
		variants: []model.VariantInput{
			{Name: "Edition", Position: 0, Options: []string{"Home", "Business"}},
		},
		skus: []seedSKU{
			{code: "office-suite-BUS", selection: map[string]string{"Edition": "Business"}, price: 310000},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger := zerolog.Nop()
	variantRepo := repository.NewVariantRepository(pool, logger)
	skuRepo := repository.NewSKURepository(pool, logger)

	for _, p := range catalog {
		productID, err := insertProduct(ctx, pool, p)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.slug, err)
		}

		optionIDs := make(map[string]map[string]int64)
		variantIDs := make(map[string]int64)
		for _, input := range p.variants {
			input.ProductID = productID
			variant, err := variantRepo.Create(ctx, input)
			if err != nil {
				log.Fatalf("Failed to seed variant %s: %v", input.Name, err)
			}
			variantIDs[variant.Name] = variant.ID
			optionIDs[variant.Name] = make(map[string]int64)
			for _, opt := range variant.Options {
				optionIDs[variant.Name][opt.Value] = opt.ID
			}
		}

		for _, s := range p.skus {
			combination := make(map[int64]int64, len(s.selection))
			for variantName, optionValue := range s.selection {
				combination[variantIDs[variantName]] = optionIDs[variantName][optionValue]
			}
			_, err := skuRepo.Create(ctx, model.SKUInput{
				ProductID:   productID,
				Code:        s.code,
				Combination: combination,
				Price:       s.price,
				InStock:     true,
			})
			if err != nil {
				log.Fatalf("Failed to seed SKU %s: %v", s.code, err)
			}
		}

		fmt.Printf("Seeded %s with %d variants and %d SKUs\n", p.slug, len(p.variants), len(p.skus))
	}

	fmt.Println("\nSample catalog created successfully!")
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p seedProduct) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO products (slug, name, description, base_price, in_stock)
		 VALUES ($1, $2, $3, $4, true)
		 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, base_price = EXCLUDED.base_price
		 RETURNING id`,
		p.slug, p.name, p.description, p.basePrice,
	).Scan(&id)
	return id, err
}
