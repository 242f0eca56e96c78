package cli

import (
	"context"
	"fmt"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

// Feed prints what the feed screen currently shows.
func (a *App) Feed(ctx context.Context) error {
	renderFeed(a.out, a.ctrl.State())
	return nil
}

func (a *App) Tab(ctx context.Context, name string) error {
	tab, err := models.ParseTab(name)
	if err != nil {
		return err
	}
	err = a.ctrl.SetTab(ctx, tab)
	renderFeed(a.out, a.ctrl.State())
	return err
}

func (a *App) Refresh(ctx context.Context) error {
	err := a.ctrl.Refresh(ctx)
	renderFeed(a.out, a.ctrl.State())
	return err
}

// Focus revalidates the active tab without rendering, like the background job.
func (a *App) Focus(ctx context.Context) error {
	if err := a.ctrl.Focus(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Feed revalidated.")
	return nil
}

// Post prompts for a title, a body and an optional image to attach.
func (a *App) Post(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Text", a.out)
	if err != nil {
		return err
	}
	image, err := GetOptionalText(a.reader, "Image path", a.out)
	if err != nil {
		return err
	}

	req := models.CreatePostRequest{Title: title, Body: body}
	if image != "" {
		ref, err := a.files.Upload(ctx, image)
		if err != nil {
			return err
		}
		req.Images = []models.ImageRef{*ref}
	}

	p, err := a.ctrl.CreatePost(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted %s.\n", p.ID)
	renderFeed(a.out, a.ctrl.State())
	return nil
}

func (a *App) Comment(ctx context.Context, postID string) error {
	body, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	if _, err := a.ctrl.AddComment(ctx, postID, body); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comment added.")
	renderFeed(a.out, a.ctrl.State())
	return nil
}

func (a *App) Delete(ctx context.Context, postID string) error {
	if err := a.ctrl.DeletePost(ctx, postID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", postID)
	return nil
}

// CacheInfo prints per-tab cache diagnostics.
func (a *App) CacheInfo(ctx context.Context) error {
	renderCacheStats(a.out, a.feed.Stats())
	return nil
}
