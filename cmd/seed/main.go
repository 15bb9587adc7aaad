package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/vantora/leadhub/internal/config"
	"github.com/vantora/leadhub/internal/entity"
	"github.com/vantora/leadhub/internal/infra/database"
)

const leadCount = 500

var firstNames = []string{"John", "Jane", "Michael", "Sarah", "Robert", "Emma", "David", "Olivia", "James", "Ava"}

var lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

var companies = []string{
	"Tech Corp", "Innovation Inc", "Digital Solutions", "Cloud Systems", "Data Analytics",
	"Mobile Apps", "AI Labs", "Web Services", "Enterprise Tech", "StartUp Hub",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal(err)
	}

	// Start from a clean slate so repeated runs stay at leadCount rows.
	if _, err := db.ExecContext(ctx, "DELETE FROM leads"); err != nil {
		log.Fatalf("failed to clear leads: %v", err)
	}

	repo := database.NewLeadRepository(db)

	for i := 0; i < leadCount; i++ {
		lead := entity.NewLead(
			pick(firstNames),
			pick(lastNames),
			fmt.Sprintf("lead%d@example.com", i),
			fmt.Sprintf("+91%d", rand.Int63n(9000000000)+1000000000),
			pick(companies),
			pick(entity.Stages),
			float64(rand.Intn(500000)+10000),
			pick(entity.Sources),
			fmt.Sprintf("Lead generated on %s", time.Now().Format("2006-01-02")),
		)

		if err := repo.Create(ctx, lead); err != nil {
			log.Fatalf("failed to seed lead %d: %v", i, err)
		}
	}

	log.Printf("%d leads seeded successfully", leadCount)
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
