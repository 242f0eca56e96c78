package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/cache"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/controller"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

func renderFeed(w io.Writer, s controller.State) {
	fmt.Fprintf(w, "[%s] %d post(s)", s.Tab, len(s.Posts))
	switch {
	case s.IsLoading:
		fmt.Fprint(w, " loading...")
	case s.IsRefreshing:
		fmt.Fprint(w, " refreshing...")
	}
	fmt.Fprintln(w)
	if s.Err != nil {
		fmt.Fprintf(w, "  (showing cached posts: %v)\n", s.Err)
	}

	for _, p := range s.Posts {
		renderPost(w, p)
	}
}

func renderPost(w io.Writer, p models.Post) {
	fmt.Fprintf(w, "- %s  %s  by %s", p.ID, p.Title, p.Author.DisplayName())
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  %s", p.CreatedAt.Local().Format(timeLayout))
	}
	fmt.Fprintln(w)

	if body := strings.TrimSpace(p.Body); body != "" {
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	if len(p.Images) > 0 {
		fmt.Fprintf(w, "    [%d image(s)]\n", len(p.Images))
	}
	for _, c := range p.Comments {
		fmt.Fprintf(w, "    > %s: %s\n", c.Author.DisplayName(), c.Body)
	}
}

func renderUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s  %s\n", u.ID, u.DisplayName())
	fmt.Fprintf(w, "  email: %s\n", u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Fprintf(w, "  name:  %s %s\n", u.FirstName, u.LastName)
	}
	if u.Photo != nil {
		fmt.Fprintf(w, "  photo: %s\n", u.Photo.Path)
	}
}

func renderCacheStats(w io.Writer, stats []cache.TabStats) {
	for _, s := range stats {
		updated := "never"
		if s.LastUpdatedAt != nil {
			updated = s.LastUpdatedAt.Local().Format(time.RFC3339)
		}
		state := "fresh"
		if s.Stale {
			state = "stale"
		}
		fmt.Fprintf(w, "%-8s %3d post(s)  updated %s  %s\n", s.Tab, s.Count, updated, state)
	}
}
