package cli

import (
	"context"
	"fmt"
)

func (a *App) Friends(ctx context.Context) error {
	friends, err := a.social.Friends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Fprintln(a.out, "No friends yet.")
		return nil
	}
	for _, f := range friends {
		fmt.Fprintf(a.out, "  %s  %s\n", f.ID, f.DisplayName())
	}
	return nil
}

func (a *App) AddFriend(ctx context.Context, userID string) error {
	if err := a.social.AddFriend(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s. Run 'tab friends' then 'refresh' to see their posts.\n", userID)
	return nil
}

func (a *App) Unfriend(ctx context.Context, userID string) error {
	if err := a.social.RemoveFriend(ctx, userID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s.\n", userID)
	return nil
}

// Stats prints the cached snapshot and refreshes it afterwards.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.social.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "posts: %d  comments: %d  friends: %d\n", stats.PostsCount, stats.CommentsCount, stats.FriendsCount)

	if _, err := a.social.RefreshStats(ctx); err != nil {
		a.log.Debug(ctx, "stats refresh failed", "error", err)
	}
	return nil
}

func (a *App) SetHidden(ctx context.Context, hidden bool) error {
	if err := a.social.SetHidden(ctx, hidden); err != nil {
		return err
	}
	if hidden {
		fmt.Fprintln(a.out, "Your posts are now hidden from the global feed.")
	} else {
		fmt.Fprintln(a.out, "Your posts are visible in the global feed.")
	}
	return nil
}

func (a *App) Upload(ctx context.Context, path string) error {
	ref, err := a.files.Upload(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Uploaded %s as %s (%s).\n", path, ref.ID, ref.Path)
	return nil
}
