package models

import (
	"fmt"
	"strings"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
)

// FeedTab names one of the three feed partitions.
type FeedTab string

const (
	TabAll     FeedTab = "all"
	TabFriends FeedTab = "friends"
	TabMine    FeedTab = "mine"
)

// Tabs lists every feed tab in display order.
var Tabs = []FeedTab{TabAll, TabFriends, TabMine}

func (t FeedTab) Valid() bool {
	switch t {
	case TabAll, TabFriends, TabMine:
		return true
	}
	return false
}

func (t FeedTab) String() string { return string(t) }

// ParseTab accepts a tab name case-insensitively.
func ParseTab(s string) (FeedTab, error) {
	t := FeedTab(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownTab, s)
	}
	return t, nil
}
