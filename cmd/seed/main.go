// Command main runs the demo data seeder.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"socialnet/internal/bootstrap"
	"socialnet/internal/config"
	"socialnet/internal/featureflags"
	"socialnet/internal/seed"
	"socialnet/internal/service"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	thoughts := flag.Int("thoughts", 4, "Thoughts per user")
	friends := flag.Int("friends", 5, "Friends per user")
	reactions := flag.Int("reactions", 3, "Reactions per thought")
	shouldClean := flag.Bool("clean", true, "Delete existing users and thoughts before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible content (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SkipRedis: true})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer func() { _ = store.Close(context.Background()) }()

	users := service.NewUserService(store.Users, store.Thoughts, featureflags.NewManager(cfg.FeatureFlags), nil)
	thoughtSvc := service.NewThoughtService(store.Thoughts, store.Users, nil)

	res, err := seed.NewSeeder(users, thoughtSvc).Seed(ctx, seed.Options{
		NumUsers:            *numUsers,
		ThoughtsPerUser:     *thoughts,
		FriendsPerUser:      *friends,
		ReactionsPerThought: *reactions,
		ShouldClean:         *shouldClean,
		RandSeed:            *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d thoughts, %d reactions into %s",
		len(res.Users), len(res.Thoughts), res.Reactions, store.Backend)
}
