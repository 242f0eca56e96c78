// Package controller adapts the feed services to a presentation layer: it
// owns the active tab, the list on screen and the loading flags, and tells
// subscribers whenever any of them change.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/services"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// Session reports whether there is a logged-in user.
type Session interface {
	Authenticated() bool
}

// State is what the presentation layer renders.
type State struct {
	Tab          models.FeedTab
	Posts        []models.Post
	IsLoading    bool
	IsRefreshing bool
	// Err is the last fetch failure, nil after a successful fetch.
	Err error
}

type loadMode int

const (
	modeLoad    loadMode = iota // mount or tab change
	modeFocus                   // silent background revalidation
	modeRefresh                 // pull-to-refresh
)

// FeedController drives one feed screen.
type FeedController struct {
	feed    services.FeedService
	session Session
	prefs   metadata.Repository
	log     logging.Logger

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	// Generation of the latest load per flag. Only the latest one may clear it.
	loadGen    uint64
	refreshGen uint64
}

func NewFeedController(feed services.FeedService, session Session, prefs metadata.Repository, log logging.Logger) *FeedController {
	return &FeedController{
		feed:    feed,
		session: session,
		prefs:   prefs,
		log:     log.With("component", "feed-controller"),
		state:   State{Tab: models.TabAll, Posts: []models.Post{}},
		subs:    make(map[int]func(State)),
	}
}

// Subscribe registers fn to be called with every new state. The returned
// func unregisters it.
func (c *FeedController) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// State returns a snapshot of the current state.
func (c *FeedController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *FeedController) snapshotLocked() State {
	s := c.state
	s.Posts = models.ClonePosts(c.state.Posts)
	return s
}

// Mount restores the last selected tab and loads it, preferring the cache.
func (c *FeedController) Mount(ctx context.Context) error {
	tab := models.TabAll
	if raw, err := c.prefs.Get(ctx, common.KeyActiveTab); err != nil {
		c.log.Warn(ctx, "active tab unreadable", "error", err)
	} else if len(raw) > 0 {
		if t, err := models.ParseTab(string(raw)); err == nil {
			tab = t
		}
	}

	c.mu.Lock()
	c.state.Tab = tab
	c.state.Posts = c.feed.Cached(tab)
	c.mu.Unlock()

	return c.load(ctx, tab, false, modeLoad)
}

// SetTab switches the active tab, persists the choice and loads the tab,
// preferring the cache.
func (c *FeedController) SetTab(ctx context.Context, tab models.FeedTab) error {
	if !tab.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownTab, tab)
	}

	c.mu.Lock()
	c.state.Tab = tab
	c.state.Posts = c.feed.Cached(tab)
	c.state.Err = nil
	c.mu.Unlock()

	if err := c.prefs.Set(ctx, common.KeyActiveTab, []byte(tab)); err != nil {
		c.log.Warn(ctx, "active tab not persisted", "tab", tab, "error", err)
	}
	return c.load(ctx, tab, false, modeLoad)
}

// Focus revalidates the active tab in the background. The current list stays
// on screen while the request is in flight.
func (c *FeedController) Focus(ctx context.Context) error {
	return c.load(ctx, c.activeTab(), true, modeFocus)
}

// Refresh is pull-to-refresh: a forced fetch with IsRefreshing surfaced.
func (c *FeedController) Refresh(ctx context.Context) error {
	return c.load(ctx, c.activeTab(), true, modeRefresh)
}

func (c *FeedController) DeletePost(ctx context.Context, id string) error {
	if err := c.feed.DeletePost(ctx, id); err != nil {
		return err
	}
	c.syncFromCache()
	return nil
}

func (c *FeedController) AddComment(ctx context.Context, postID, body string) (*models.Comment, error) {
	cm, err := c.feed.AddComment(ctx, postID, body)
	if err != nil {
		return nil, err
	}
	c.syncFromCache()
	return cm, nil
}

func (c *FeedController) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	p, err := c.feed.CreatePost(ctx, req)
	if err != nil {
		return nil, err
	}
	c.syncFromCache()
	return p, nil
}

func (c *FeedController) activeTab() models.FeedTab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Tab
}

// syncFromCache re-reads the active tab from the already patched cache.
func (c *FeedController) syncFromCache() {
	c.mu.Lock()
	c.state.Posts = c.feed.Cached(c.state.Tab)
	c.mu.Unlock()
	c.emit()
}

func (c *FeedController) load(ctx context.Context, tab models.FeedTab, force bool, mode loadMode) error {
	if !c.session.Authenticated() {
		c.mu.Lock()
		c.state.Posts = []models.Post{}
		c.state.IsLoading, c.state.IsRefreshing = false, false
		c.state.Err = nil
		c.mu.Unlock()
		c.emit()
		return nil
	}

	var gen uint64
	c.mu.Lock()
	switch mode {
	case modeLoad:
		c.loadGen++
		gen = c.loadGen
		c.state.IsLoading = true
	case modeRefresh:
		c.refreshGen++
		gen = c.refreshGen
		c.state.IsRefreshing = true
	}
	c.mu.Unlock()
	c.emit()

	posts, err := c.feed.GetPosts(ctx, tab, force)

	c.mu.Lock()
	switch {
	case mode == modeLoad && gen == c.loadGen:
		c.state.IsLoading = false
	case mode == modeRefresh && gen == c.refreshGen:
		c.state.IsRefreshing = false
	}
	// A response for a tab the user already left is kept in the cache only.
	if c.state.Tab == tab {
		if err == nil || len(posts) > 0 || len(c.state.Posts) == 0 {
			c.state.Posts = posts
		}
		c.state.Err = err
	}
	c.mu.Unlock()
	c.emit()

	if err != nil {
		c.log.Warn(ctx, "feed load failed", "tab", tab, "error", err)
	}
	return err
}

func (c *FeedController) emit() {
	c.mu.Lock()
	s := c.snapshotLocked()
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
