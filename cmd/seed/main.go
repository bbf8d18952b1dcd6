package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jrsteele09/mobile-musician-api/internal/app"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/jrsteele09/mobile-musician-api/internal/seed"
	"github.com/jrsteele09/mobile-musician-api/users"
	"github.com/rs/zerolog/log"
)

func main() {
	force := flag.Bool("force", true, "reseed even when data already exists")
	flag.Parse()

	if err := run(*force); err != nil {
		log.Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run(force bool) error {
	c, err := config.New()
	if err != nil {
		return err
	}
	app.ConfigureLogging(c)

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, c)
	if err != nil {
		return err
	}
	defer stores.Close()

	seeder, err := seed.New(stores.Users, stores.Catalog,
		seed.WithHasher(users.NewHasher(users.WithCost(c.GetBcryptCost()))))
	if err != nil {
		return err
	}

	result, err := seeder.Run(ctx, force)
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Println("database already contains data, nothing seeded (use -force to reseed)")
		return nil
	}

	fmt.Printf("seeded %d instruments, %d genres and %d users\n",
		len(result.Instruments), len(result.Genres), len(result.Users))
	fmt.Println("\nInstrument IDs:")
	for _, instrument := range result.Instruments {
		fmt.Printf("- %s: %s\n", instrument.Name, instrument.ID)
	}
	fmt.Println("\nGenre IDs:")
	for _, genre := range result.Genres {
		fmt.Printf("- %s: %s\n", genre.Name, genre.ID)
	}
	fmt.Printf("\nDemo accounts use the password %q\n", seed.DemoPassword)
	return nil
}
