// Command satellite runs one client session against the record store:
// resolve the principal, print the materialized feed, and optionally apply
// a post or a like toggle.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"satellite/internal/bootstrap"
	"satellite/internal/config"
	"satellite/internal/models"
	"satellite/internal/observability"
	"satellite/internal/repository"
	"satellite/internal/service"
	"satellite/internal/session"
)

func main() {
	var (
		token   = flag.String("token", "", "session JWT asserting the principal (falls back to PRINCIPAL_ID/PRINCIPAL_EMAIL)")
		post    = flag.String("post", "", "publish a post with the given content")
		image   = flag.String("image", "", "image URL attached to -post")
		like    = flag.String("like", "", "toggle the like on the given post id")
		refresh = flag.Bool("refresh", false, "reload the feed after applying interactions")
	)
	flag.Parse()

	if err := run(*token, *post, *image, *like, *refresh); err != nil {
		fmt.Fprintln(os.Stderr, "satellite:", err)
		os.Exit(1)
	}
}

func run(token, post, image, like string, refresh bool) error {
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

	principal, err := resolvePrincipal(token, cfg.JWTSecret)
	if err != nil {
		return err
	}

	profiles := repository.NewProfileRepository(rt.DB)
	posts := repository.NewPostRepository(rt.DB)
	likes := repository.NewLikeRepository(rt.DB)

	client := service.NewClient(
		session.NewStaticSession(principal, nil),
		service.NewIdentityService(profiles),
		service.NewFeedService(posts, profiles, likes),
		posts, likes, profiles,
		service.ClientOptions{
			FeedLimit:         cfg.FeedLimit,
			RollbackOnFailure: cfg.LikeRollback || rt.Flags.Enabled("like_rollback", principal.ID),
		},
	)

	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("session start: %w", err)
	}

	profile, err := client.Profile()
	if err != nil {
		return err
	}
	fmt.Printf("signed in as @%s (%s), %d posts\n\n", profile.Handle, profile.Email, profile.PostsCount)

	if post != "" {
		item, err := client.CreatePost(ctx, post, image)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		fmt.Printf("published %s\n\n", item.Post.ID)
	}
	if like != "" {
		item, err := client.ToggleLike(ctx, like)
		if err != nil {
			// fire-and-forget mode keeps the local flip; report and continue
			observability.GlobalLogger.WarnContext(ctx, "like toggle failed",
				"post_id", like, "error", err.Error())
		} else {
			state := "unliked"
			if item.IsLiked {
				state = "liked"
			}
			fmt.Printf("%s %s (%d likes)\n\n", state, item.Post.ID, item.Post.LikesCount)
		}
	}

	if refresh {
		if err := client.Refresh(ctx); err != nil {
			return fmt.Errorf("feed refresh: %w", err)
		}
	}

	feed, err := client.Feed()
	if err != nil {
		return err
	}
	printFeed(feed)

	client.Logout(ctx)
	return nil
}

// resolvePrincipal takes the principal from the JWT when given, otherwise
// from PRINCIPAL_ID/PRINCIPAL_EMAIL for local development.
func resolvePrincipal(token, secret string) (session.Principal, error) {
	if token != "" {
		return session.PrincipalFromToken(token, secret)
	}
	principal := session.Principal{
		ID:    os.Getenv("PRINCIPAL_ID"),
		Email: os.Getenv("PRINCIPAL_EMAIL"),
	}
	if principal.ID == "" || principal.Email == "" {
		return session.Principal{}, fmt.Errorf("provide -token or set PRINCIPAL_ID and PRINCIPAL_EMAIL")
	}
	return principal, nil
}

func printFeed(feed []models.FeedItem) {
	if len(feed) == 0 {
		fmt.Println("feed is empty")
		return
	}
	for _, item := range feed {
		author := "(unknown author)"
		if item.Author != nil {
			author = "@" + item.Author.Handle
		}
		liked := " "
		if item.IsLiked {
			liked = "*"
		}
		fmt.Printf("[%s] %s  %s  (%d likes)\n    %s\n",
			liked, item.Post.CreatedAt.Format("2006-01-02 15:04"), author,
			item.Post.LikesCount, item.Post.Content)
	}
}
