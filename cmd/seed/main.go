// Command seed logs in as the admin and loads a sample catalog into the
// API, fanning package creation out over a bounded worker pool. Meant for
// pointing a fresh stub (or staging backend) at demo data.
package main

import (
	"context"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"atlas_travel/internal/adapters/agency"
	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

func pstr(s string) *string { return &s }

var samplePackages = []domain.PackageInput{
	{
		Name: "Bali Escape", Destination: "Bali", Duration: 5, Price: 20000,
		Description: "Five days of beaches, temples and rice terraces.",
		Itinerary:   []string{"Day 1: Arrival and beach sunset", "Day 2: Uluwatu temple", "Day 3: Ubud rice terraces", "Day 4: Nusa Penida day trip", "Day 5: Departure"},
		Inclusions:  []string{"Hotel", "Breakfast", "Airport transfers"},
		Exclusions:  []string{"Flights", "Travel insurance"},
		Category:    pstr("beach"), Featured: true, Active: true,
	},
	{
		Name: "Kerala Backwaters", Destination: "Kerala", Duration: 4, Price: 15000,
		Description: "Houseboat cruise through the Alleppey backwaters.",
		Itinerary:   []string{"Day 1: Kochi arrival", "Day 2: Houseboat boarding", "Day 3: Village walk", "Day 4: Departure"},
		Inclusions:  []string{"Houseboat stay", "All meals"},
		Category:    pstr("nature"), Featured: true, Active: true,
	},
	{
		Name: "Ladakh Adventure", Destination: "Ladakh", Duration: 7, Price: 35000,
		Description: "High-altitude passes, monasteries and Pangong lake.",
		Itinerary:   []string{"Day 1: Leh acclimatisation", "Day 2: Shey and Thiksey", "Day 3: Khardung La", "Day 4: Nubra valley", "Day 5: Pangong lake", "Day 6: Leh market", "Day 7: Departure"},
		Inclusions:  []string{"Hotel", "Inner line permits", "Oxygen support"},
		Exclusions:  []string{"Flights"},
		Category:    pstr("adventure"), Active: true,
	},
	{
		Name: "Rajasthan Heritage", Destination: "Jaipur", Duration: 6, Price: 28000,
		Description: "Forts and palaces across Jaipur, Jodhpur and Udaipur.",
		Inclusions:  []string{"Hotel", "Breakfast", "Private car"},
		Category:    pstr("heritage"), Active: true,
	},
	{
		Name: "Andaman Islands", Destination: "Port Blair", Duration: 5, Price: 32000,
		Description: "Snorkelling at Havelock and Neil islands.",
		Inclusions:  []string{"Hotel", "Ferry tickets", "Snorkelling gear"},
		Category:    pstr("beach"), Active: false,
	},
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.APIBase).
		Int("workers", cfg.SeedWorkers).
		Int("packages", len(samplePackages)).
		Msg("seed starting")

	client, err := agency.New(cfg.APIBase, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("client init failed")
	}
	sess, err := client.Login(ctx, cfg.AdminUser, cfg.AdminPass)
	if err != nil {
		log.Fatal().Err(err).Msg("admin login failed")
	}
	client.SetToken(sess.Token)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, in := range samplePackages {
		in := in

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			p, err := client.CreatePackage(ctx, in)
			if err != nil {
				log.Error().Err(err).Str("name", in.Name).Msg("create package failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Info().Str("id", p.ID).Str("name", p.Name).Msg("package created")
		}()
	}
	wg.Wait()

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("seed finished with errors")
	}
	log.Info().Msg("seed complete")
}
