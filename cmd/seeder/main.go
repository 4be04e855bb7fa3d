// cmd/seeder/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/fitkitchen-backend/internal/config"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
	"github.com/unclebandit/fitkitchen-backend/internal/repository"
	"github.com/unclebandit/fitkitchen-backend/internal/service"
)

func main() {
	seedFile := flag.String("file", "seed/customers.json", "JSON array of customer payloads")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := repository.Open(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	payloads, err := readSeed(*seedFile)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *seedFile, err)
	}

	svc := service.NewCustomerService(store, nil, "")
	seeded, err := seedCustomers(svc, payloads)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range seeded {
		fmt.Printf("Seeded customer %d: %s\n", c.ID, c.Name)
	}

	fmt.Println("Customer seeding completed successfully!")
}

// seedCustomers validates every payload before creating any, so a bad entry
// leaves the store untouched.
func seedCustomers(svc *service.CustomerService, payloads []model.CustomerPayload) ([]model.Customer, error) {
	for i, p := range payloads {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}

	seeded := make([]model.Customer, 0, len(payloads))
	for _, p := range payloads {
		c, err := svc.Create(p)
		if err != nil {
			return seeded, fmt.Errorf("failed to seed %q: %w", p.Name, err)
		}
		seeded = append(seeded, *c)
	}
	return seeded, nil
}

func readSeed(path string) ([]model.CustomerPayload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payloads []model.CustomerPayload
	if err := json.Unmarshal(content, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}
