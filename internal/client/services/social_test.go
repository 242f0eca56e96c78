package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

func TestSocialService_StatsServesCache(t *testing.T) {
	ctx := context.Background()
	cl := newFakeClient()
	meta := newMemRepo()
	meta.data[common.KeySocialStats] = []byte(`{"postsCount":4,"commentsCount":2,"friendsCount":1}`)

	stats, err := NewSocialService(cl, meta, logging.Discard()).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.PostsCount)
	assert.Zero(t, cl.count("SocialInfo"))
}

func TestSocialService_StatsFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	cl := newFakeClient()
	cl.InfoRet = &models.SocialStats{PostsCount: 7}
	meta := newMemRepo()
	svc := NewSocialService(cl, meta, logging.Discard())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.PostsCount)
	assert.JSONEq(t, `{"postsCount":7,"commentsCount":0,"friendsCount":0}`, string(meta.data[common.KeySocialStats]))

	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cl.count("SocialInfo"))
}

func TestSocialService_CorruptCacheRefetches(t *testing.T) {
	cl := newFakeClient()
	cl.InfoRet = &models.SocialStats{FriendsCount: 2}
	meta := newMemRepo()
	meta.data[common.KeySocialStats] = []byte("{oops")

	stats, err := NewSocialService(cl, meta, logging.Discard()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FriendsCount)
}

func TestSocialService_RefreshStatsError(t *testing.T) {
	cl := newFakeClient()
	cl.InfoErr = client.ErrUnavailable

	_, err := NewSocialService(cl, newMemRepo(), logging.Discard()).RefreshStats(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
}

func TestSocialService_Friends(t *testing.T) {
	ctx := context.Background()
	cl := newFakeClient()
	cl.FriendsRet = []models.UserRef{{ID: "u2"}}
	svc := NewSocialService(cl, newMemRepo(), logging.Discard())

	friends, err := svc.Friends(ctx)
	require.NoError(t, err)
	assert.Len(t, friends, 1)

	require.NoError(t, svc.AddFriend(ctx, "u3"))
	require.NoError(t, svc.RemoveFriend(ctx, "u2"))
	require.ErrorIs(t, svc.AddFriend(ctx, ""), common.ErrEmptyInput)
	require.ErrorIs(t, svc.RemoveFriend(ctx, ""), common.ErrEmptyInput)
	assert.Equal(t, 1, cl.count("AddFriend"))
	assert.Equal(t, 1, cl.count("RemoveFriend"))

	cl.FriendErr = client.NewAPIError(409, "alreadyFriends")
	require.ErrorIs(t, svc.AddFriend(ctx, "u2"), client.ErrConflict)
}

func TestSocialService_Hidden(t *testing.T) {
	ctx := context.Background()
	cl := newFakeClient()
	cl.HiddenRet = true
	svc := NewSocialService(cl, newMemRepo(), logging.Discard())

	hidden, err := svc.IsHidden(ctx)
	require.NoError(t, err)
	assert.True(t, hidden)

	require.NoError(t, svc.SetHidden(ctx, true))
	require.NoError(t, svc.SetHidden(ctx, false))
	assert.Equal(t, 1, cl.count("Hide"))
	assert.Equal(t, 1, cl.count("Unhide"))
}

func TestFileService_Upload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte("PNG"), 0o600))

	cl := newFakeClient()
	cl.UploadRet = &models.ImageRef{ID: "f1", Path: "/f1.png"}

	ref, err := NewFileService(cl).Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "f1", ref.ID)
	assert.Equal(t, "avatar.png", cl.LastUpload)
	assert.Equal(t, "PNG", string(cl.LastUploaded))
}

func TestFileService_UploadErrors(t *testing.T) {
	ctx := context.Background()
	cl := newFakeClient()
	svc := NewFileService(cl)

	_, err := svc.Upload(ctx, filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = svc.Upload(ctx, t.TempDir())
	require.Error(t, err)
	assert.Zero(t, cl.count("UploadFile"))
}
