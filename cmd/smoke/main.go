// Command smoke runs a quick connectivity check against the API: public
// catalog read, admin login, authenticated stats. Exit code 0 means all
// checks passed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"atlas_travel/internal/adapters/agency"
	"atlas_travel/internal/adapters/observability"
	"atlas_travel/internal/domain"
	"atlas_travel/internal/shared"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = godotenv.Load()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	client, err := agency.New(cfg.APIBase, cfg.APIRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("client init failed")
	}

	ok := true
	check := func(name string, err error) {
		if err != nil {
			ok = false
			fmt.Printf("FAIL  %-22s %v\n", name, err)
			return
		}
		fmt.Printf("ok    %s\n", name)
	}

	pkgs, err := client.ListPackages(ctx, domain.PackagesQuery{})
	check("public catalog", err)
	if err == nil {
		fmt.Printf("      %d active packages\n", len(pkgs))
	}

	_, err = client.ListImages(ctx, nil)
	check("public gallery", err)

	if cfg.AdminPass == "" {
		fmt.Println("skip  admin checks (ADMIN_PASSWORD not set)")
	} else {
		sess, err := client.Login(ctx, cfg.AdminUser, cfg.AdminPass)
		check("admin login", err)
		if err == nil {
			client.SetToken(sess.Token)
			st, err := client.Stats(ctx)
			check("admin stats", err)
			if err == nil {
				fmt.Printf("      %d bookings (%d pending), %d inquiries (%d new)\n",
					st.Bookings, st.PendingBookings, st.Inquiries, st.NewInquiries)
			}
		}
	}

	if !ok {
		os.Exit(1)
	}
}
