package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/repositories/metadata"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// SocialService covers friends, the profile stats snapshot and the
// hide-from-global-feed switch.
type SocialService interface {
	Friends(ctx context.Context) ([]models.UserRef, error)
	AddFriend(ctx context.Context, userID string) error
	RemoveFriend(ctx context.Context, userID string) error
	// Stats serves the cached snapshot when there is one and only goes to the
	// network otherwise.
	Stats(ctx context.Context) (*models.SocialStats, error)
	RefreshStats(ctx context.Context) (*models.SocialStats, error)
	IsHidden(ctx context.Context) (bool, error)
	SetHidden(ctx context.Context, hidden bool) error
}

type socialService struct {
	client client.Client
	meta   metadata.Repository
	log    logging.Logger
}

func NewSocialService(client client.Client, meta metadata.Repository, log logging.Logger) SocialService {
	return &socialService{client: client, meta: meta, log: log.With("component", "social")}
}

func (s *socialService) Friends(ctx context.Context) ([]models.UserRef, error) {
	friends, err := s.client.Friends(ctx)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

func (s *socialService) AddFriend(ctx context.Context, userID string) error {
	if userID == "" {
		return common.ErrEmptyInput
	}
	if err := s.client.AddFriend(ctx, userID); err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	return nil
}

func (s *socialService) RemoveFriend(ctx context.Context, userID string) error {
	if userID == "" {
		return common.ErrEmptyInput
	}
	if err := s.client.RemoveFriend(ctx, userID); err != nil {
		return fmt.Errorf("remove friend: %w", err)
	}
	return nil
}

func (s *socialService) Stats(ctx context.Context) (*models.SocialStats, error) {
	raw, err := s.meta.Get(ctx, common.KeySocialStats)
	if err != nil {
		s.log.Warn(ctx, "cached stats unreadable", "error", err)
	}
	if len(raw) > 0 {
		var stats models.SocialStats
		if err := json.Unmarshal(raw, &stats); err == nil {
			return &stats, nil
		}
		s.log.Warn(ctx, "cached stats corrupt, refetching")
	}
	return s.RefreshStats(ctx)
}

func (s *socialService) RefreshStats(ctx context.Context) (*models.SocialStats, error) {
	stats, err := s.client.SocialInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("social info: %w", err)
	}

	raw, err := json.Marshal(stats)
	if err == nil {
		err = s.meta.Set(ctx, common.KeySocialStats, raw)
	}
	if err != nil {
		s.log.Warn(ctx, "stats not cached", "error", err)
	}
	return stats, nil
}

func (s *socialService) IsHidden(ctx context.Context) (bool, error) {
	hidden, err := s.client.HiddenStatus(ctx)
	if err != nil {
		return false, fmt.Errorf("hidden status: %w", err)
	}
	return hidden, nil
}

func (s *socialService) SetHidden(ctx context.Context, hidden bool) error {
	var err error
	if hidden {
		err = s.client.Hide(ctx)
	} else {
		err = s.client.Unhide(ctx)
	}
	if err != nil {
		return fmt.Errorf("set hidden=%t: %w", hidden, err)
	}
	return nil
}
