// Package cache holds the per-tab feed cache: an in-memory view of the last
// fetched post lists, mirrored to the device key-value store as one blob.
//
// The cache is never the system of record. Anything it gets wrong is fixed by
// the next successful fetch for that tab.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// FreshnessWindow is how long a fetched tab is served without revalidation.
const FreshnessWindow = 5 * time.Minute

type entry struct {
	Posts         []models.Post `json:"posts"`
	LastUpdatedAt *time.Time    `json:"lastUpdatedAt,omitempty"`
}

// TabStats describes one tab for diagnostics.
type TabStats struct {
	Tab           models.FeedTab
	Count         int
	LastUpdatedAt *time.Time
	Stale         bool
}

// FeedCache maps each feed tab to its post list and last fetch time.
// All methods are safe for concurrent use. Mutations persist the whole cache.
type FeedCache struct {
	repo  metadata.Repository
	clock clockwork.Clock
	log   logging.Logger

	mu      sync.RWMutex
	entries map[models.FeedTab]*entry
	// issued and applied implement the per-tab request sequence; see Begin.
	issued  map[models.FeedTab]uint64
	applied map[models.FeedTab]uint64
}

// NewFeedCache returns an empty cache. A nil clock means the real clock.
func NewFeedCache(repo metadata.Repository, clock clockwork.Clock, log logging.Logger) *FeedCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FeedCache{
		repo:    repo,
		clock:   clock,
		log:     log.With("component", "feed-cache"),
		entries: emptyEntries(),
		issued:  make(map[models.FeedTab]uint64),
		applied: make(map[models.FeedTab]uint64),
	}
}

func emptyEntries() map[models.FeedTab]*entry {
	m := make(map[models.FeedTab]*entry, len(models.Tabs))
	for _, t := range models.Tabs {
		m[t] = &entry{Posts: []models.Post{}}
	}
	return m
}

// Load replaces the in-memory state with the persisted blob. A missing blob
// leaves the cache empty. A corrupt blob is reported and the cache stays empty.
func (c *FeedCache) Load(ctx context.Context) error {
	raw, err := c.repo.Get(ctx, common.KeyPostsCache)
	if err != nil {
		return fmt.Errorf("load feed cache: %w", err)
	}

	entries := emptyEntries()
	if len(raw) > 0 {
		var stored map[models.FeedTab]*entry
		if err := json.Unmarshal(raw, &stored); err != nil {
			c.mu.Lock()
			c.entries = entries
			c.mu.Unlock()
			return fmt.Errorf("decode feed cache: %w", err)
		}
		for tab, e := range stored {
			if !tab.Valid() || e == nil {
				continue
			}
			if e.Posts == nil {
				e.Posts = []models.Post{}
			}
			entries[tab] = e
		}
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Get returns a copy of the tab's posts; empty if the tab was never filled.
func (c *FeedCache) Get(tab models.FeedTab) []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tab]
	if !ok {
		return []models.Post{}
	}
	return models.ClonePosts(e.Posts)
}

// HasData reports whether the tab holds at least one post.
func (c *FeedCache) HasData(tab models.FeedTab) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[tab]
	return ok && len(e.Posts) > 0
}

// IsStale is true when the tab has never been fetched or its last fetch is
// older than FreshnessWindow.
func (c *FeedCache) IsStale(tab models.FeedTab) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.staleLocked(tab)
}

func (c *FeedCache) staleLocked(tab models.FeedTab) bool {
	e, ok := c.entries[tab]
	if !ok || e.LastUpdatedAt == nil {
		return true
	}
	return c.clock.Since(*e.LastUpdatedAt) > FreshnessWindow
}

// Set replaces the tab's list and stamps it with the current time.
func (c *FeedCache) Set(ctx context.Context, tab models.FeedTab, posts []models.Post) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownTab, tab)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(tab, posts)
	return c.persistLocked(ctx)
}

func (c *FeedCache) setLocked(tab models.FeedTab, posts []models.Post) {
	now := c.clock.Now()
	c.entries[tab] = &entry{Posts: models.ClonePosts(posts), LastUpdatedAt: &now}
}

// Begin issues a ticket for a fetch of tab that is about to start. Pass it to
// Apply when the response lands.
func (c *FeedCache) Begin(tab models.FeedTab) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued[tab]++
	return c.issued[tab]
}

// Apply stores posts for tab unless a response with a newer ticket was
// already applied (or the cache was cleared after the ticket was issued).
// It reports whether the posts were stored.
func (c *FeedCache) Apply(ctx context.Context, tab models.FeedTab, ticket uint64, posts []models.Post) (bool, error) {
	if !tab.Valid() {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownTab, tab)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket <= c.applied[tab] {
		c.log.Debug(ctx, "discarding out-of-order response", "tab", tab, "ticket", ticket, "applied", c.applied[tab])
		return false, nil
	}
	c.applied[tab] = ticket
	c.setLocked(tab, posts)
	return true, c.persistLocked(ctx)
}

// InsertFront prepends post to the "all" tab, and to "mine" when callerID is
// its author. The "friends" tab is left for the next refresh.
func (c *FeedCache) InsertFront(ctx context.Context, post models.Post, callerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prependLocked(models.TabAll, post)
	if callerID != "" && post.Author.ID == callerID {
		c.prependLocked(models.TabMine, post)
	}
	return c.persistLocked(ctx)
}

func (c *FeedCache) prependLocked(tab models.FeedTab, post models.Post) {
	e := c.entries[tab]
	posts := make([]models.Post, 0, len(e.Posts)+1)
	posts = append(posts, post.Clone())
	for _, p := range e.Posts {
		if p.ID != post.ID {
			posts = append(posts, p)
		}
	}
	e.Posts = posts
}

// UpdateByID replaces the post with the same id in every tab that shows it.
func (c *FeedCache) UpdateByID(ctx context.Context, post models.Post) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for _, e := range c.entries {
		for i := range e.Posts {
			if e.Posts[i].ID == post.ID {
				e.Posts[i] = post.Clone()
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return c.persistLocked(ctx)
}

// RemoveByID deletes the post from every tab.
func (c *FeedCache) RemoveByID(ctx context.Context, postID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for _, e := range c.entries {
		kept := e.Posts[:0]
		for _, p := range e.Posts {
			if p.ID == postID {
				changed = true
				continue
			}
			kept = append(kept, p)
		}
		e.Posts = kept
	}
	if !changed {
		return nil
	}
	return c.persistLocked(ctx)
}

// Clear empties every tab and drops their timestamps. Responses for tickets
// issued before Clear are discarded by Apply.
func (c *FeedCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = emptyEntries()
	for tab, n := range c.issued {
		c.applied[tab] = n
	}
	return c.persistLocked(ctx)
}

// Stats reports every tab in display order.
func (c *FeedCache) Stats() []TabStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]TabStats, 0, len(models.Tabs))
	for _, tab := range models.Tabs {
		e := c.entries[tab]
		s := TabStats{Tab: tab, Count: len(e.Posts), Stale: c.staleLocked(tab)}
		if e.LastUpdatedAt != nil {
			ts := *e.LastUpdatedAt
			s.LastUpdatedAt = &ts
		}
		out = append(out, s)
	}
	return out
}

func (c *FeedCache) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode feed cache: %w", err)
	}
	if err := c.repo.Set(ctx, common.KeyPostsCache, raw); err != nil {
		return fmt.Errorf("persist feed cache: %w", err)
	}
	return nil
}
