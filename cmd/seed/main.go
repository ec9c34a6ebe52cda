// Command seed populates the record store with demo profiles, posts, and
// likes. Development and testing only.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"satellite/internal/bootstrap"
	"satellite/internal/config"
	"satellite/internal/repository"
	"satellite/internal/seed"
)

func main() {
	var (
		profiles  = flag.Int("profiles", 10, "number of profiles to create")
		posts     = flag.Int("posts", 5, "posts per profile")
		likeRatio = flag.Float64("like-ratio", 0.2, "probability a profile likes a post")
		maxDays   = flag.Int("max-days", 30, "spread post timestamps over this many days")
		dryRun    = flag.Bool("dry-run", false, "log what would be written without touching the store")
	)
	flag.Parse()

	if err := run(*profiles, *posts, *likeRatio, *maxDays, *dryRun); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(profiles, posts int, likeRatio float64, maxDays int, dryRun bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		return err
	}
	defer rt.Shutdown(ctx)

	factory := seed.NewFactory(
		repository.NewProfileRepository(rt.DB),
		repository.NewPostRepository(rt.DB),
		repository.NewLikeRepository(rt.DB),
		seed.Options{
			Profiles:        profiles,
			PostsPerProfile: posts,
			LikeRatio:       likeRatio,
			MaxDays:         maxDays,
			DryRun:          dryRun,
		},
	)
	return factory.Run(ctx)
}
