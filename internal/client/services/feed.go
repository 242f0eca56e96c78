package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/cache"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// Identity tells who the caller is, "" when unknown.
type Identity interface {
	UserID() string
}

// FeedService decides, per tab, whether to serve the cache or go to the
// network, and keeps the cache in step with local writes.
//
// Contract:
//   - GetPosts: stale-while-revalidate read of one tab. The returned list is
//     always usable; a non-nil error reports a failed fetch whose result was
//     replaced by the cached list (possibly empty).
//   - CreatePost, AddComment, DeletePost: remote write first, cache patch only
//     after the backend confirmed it.
//   - PreloadAll: force-refresh every tab, tolerating individual failures.
type FeedService interface {
	GetPosts(ctx context.Context, tab models.FeedTab, forceRefresh bool) ([]models.Post, error)
	Cached(tab models.FeedTab) []models.Post
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	AddComment(ctx context.Context, postID, body string) (*models.Comment, error)
	DeletePost(ctx context.Context, id string) error
	PreloadAll(ctx context.Context) error
	Stats() []cache.TabStats
	ClearCache(ctx context.Context) error
}

type feedService struct {
	client   client.Client
	cache    *cache.FeedCache
	identity Identity
	log      logging.Logger
}

func NewFeedService(client client.Client, cache *cache.FeedCache, identity Identity, log logging.Logger) FeedService {
	return &feedService{client: client, cache: cache, identity: identity, log: log.With("component", "feed")}
}

func (s *feedService) GetPosts(ctx context.Context, tab models.FeedTab, forceRefresh bool) ([]models.Post, error) {
	if !tab.Valid() {
		return []models.Post{}, fmt.Errorf("%w: %q", common.ErrUnknownTab, tab)
	}

	if !forceRefresh && s.cache.HasData(tab) && !s.cache.IsStale(tab) {
		s.log.Debug(ctx, "serving cached feed", "tab", tab)
		return s.cache.Get(tab), nil
	}

	ticket := s.cache.Begin(tab)
	posts, err := s.fetch(ctx, tab)
	if err != nil {
		s.log.Warn(ctx, "feed fetch failed, serving cache", "tab", tab, "error", err)
		return s.cache.Get(tab), err
	}

	applied, err := s.cache.Apply(ctx, tab, ticket, posts)
	if err != nil {
		s.log.Warn(ctx, "feed cache not persisted", "tab", tab, "error", err)
	}
	if !applied {
		// A newer response for this tab already landed.
		return s.cache.Get(tab), nil
	}
	return models.ClonePosts(posts), nil
}

func (s *feedService) fetch(ctx context.Context, tab models.FeedTab) ([]models.Post, error) {
	switch tab {
	case models.TabAll:
		return s.client.ListPosts(ctx)
	case models.TabMine:
		return s.client.MyPosts(ctx)
	case models.TabFriends:
		friends, err := s.client.Friends(ctx)
		if err != nil {
			return nil, fmt.Errorf("list friends: %w", err)
		}
		if len(friends) == 0 {
			return []models.Post{}, nil
		}
		ids := make([]string, 0, len(friends))
		for _, f := range friends {
			ids = append(ids, f.ID)
		}
		return s.client.PostsByUsers(ctx, ids)
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownTab, tab)
}

func (s *feedService) Cached(tab models.FeedTab) []models.Post {
	return s.cache.Get(tab)
}

// GetPost fetches one post and refreshes any cached copy of it.
func (s *feedService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.client.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.UpdateByID(ctx, *p); err != nil {
		s.log.Warn(ctx, "feed cache not persisted", "post", id, "error", err)
	}
	return p, nil
}

func (s *feedService) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	if req.Title == "" && req.Body == "" {
		return nil, common.ErrEmptyInput
	}

	p, err := s.client.CreatePost(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	callerID := s.callerID(ctx)
	if p.Author.ID == "" {
		p.Author.ID = callerID
	}
	if err := s.cache.InsertFront(ctx, *p, callerID); err != nil {
		s.log.Warn(ctx, "feed cache not persisted", "post", p.ID, "error", err)
	}
	return p, nil
}

// callerID reads the id from the access token, falling back to /auth/me.
func (s *feedService) callerID(ctx context.Context) string {
	if s.identity != nil {
		if id := s.identity.UserID(); id != "" {
			return id
		}
	}
	me, err := s.client.Me(ctx)
	if err != nil {
		s.log.Debug(ctx, "caller unknown, post goes to the all tab only", "error", err)
		return ""
	}
	return me.ID
}

func (s *feedService) AddComment(ctx context.Context, postID, body string) (*models.Comment, error) {
	if body == "" {
		return nil, common.ErrEmptyInput
	}

	c, err := s.client.AddComment(ctx, postID, body)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	// The comment is already stored remotely; a failed re-fetch only leaves
	// the cache one comment behind until the next refresh.
	p, err := s.client.GetPost(ctx, postID)
	if err != nil {
		s.log.Warn(ctx, "post re-fetch after comment failed", "post", postID, "error", err)
		return c, nil
	}
	if err := s.cache.UpdateByID(ctx, *p); err != nil {
		s.log.Warn(ctx, "feed cache not persisted", "post", postID, "error", err)
	}
	return c, nil
}

func (s *feedService) DeletePost(ctx context.Context, id string) error {
	if err := s.client.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if err := s.cache.RemoveByID(ctx, id); err != nil {
		s.log.Warn(ctx, "feed cache not persisted", "post", id, "error", err)
	}
	return nil
}

// PreloadAll force-refreshes every tab concurrently. Each tab settles on its
// own; the returned error joins every tab that failed.
func (s *feedService) PreloadAll(ctx context.Context) error {
	// A plain Group: one failing tab must not cancel the others.
	var g errgroup.Group
	errs := make([]error, len(models.Tabs))
	for i, tab := range models.Tabs {
		g.Go(func() error {
			if _, err := s.GetPosts(ctx, tab, true); err != nil {
				errs[i] = fmt.Errorf("preload %s: %w", tab, err)
			}
			return errs[i]
		})
	}
	if err := g.Wait(); err == nil {
		return nil
	}
	return errors.Join(errs...)
}

func (s *feedService) Stats() []cache.TabStats {
	return s.cache.Stats()
}

func (s *feedService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
