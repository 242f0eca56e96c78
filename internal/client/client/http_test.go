package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

func newTestHTTPClient(t *testing.T, r chi.Router, tokens *memTokens) *HTTPClient {
	t.Helper()
	root := chi.NewRouter()
	root.Mount("/api/v1", r)
	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/api/v1/", srv.Client(), tokens, logging.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHTTPClient_LoginIsUnauthenticated(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathLogin, func(w http.ResponseWriter, req *http.Request) {
		assert.Empty(t, req.Header.Get("Authorization"))
		var in models.LoginRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, "ada@example.com", in.Email)
		writeJSON(w, http.StatusOK, map[string]any{
			"token":        "a1",
			"refreshToken": "r1",
			"tokenExpires": 1700000000000,
			"user":         map[string]any{"id": "u1", "email": "ada@example.com"},
		})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "stale"})

	out, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a1", out.Token)
	assert.Equal(t, "r1", out.RefreshToken)
	assert.Equal(t, "u1", out.User.ID)
}

func TestHTTPClient_LoginRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathLogin, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"status": 422,
			"errors": map[string]string{"password": "incorrectPassword", "email": "notFound"},
		})
	})
	c := newTestHTTPClient(t, r, &memTokens{})

	_, err := c.Login(context.Background(), "x@y.z", "bad")
	require.ErrorIs(t, err, ErrValidation)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "email: notFound; password: incorrectPassword", apiErr.Message)
}

func TestHTTPClient_ListPostsSendsBearer(t *testing.T) {
	r := chi.NewRouter()
	r.Get(PathPosts, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer a1", req.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "p1", "name": "first", "content": "hello", "user": map[string]any{"id": "u1"}},
			{"id": "p2", "name": "second", "content": "world", "user": map[string]any{"id": "u2"}},
		})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1", refresh: "r1"})

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Title)
	assert.Equal(t, "u2", posts[1].Author.ID)
}

func TestHTTPClient_NullListIsEmpty(t *testing.T) {
	r := chi.NewRouter()
	r.Get(PathMyPosts, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	posts, err := c.MyPosts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestHTTPClient_PostsByUsersBody(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathPostsByUsers, func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"userIds":["u1","u2"]}`, string(b))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, []any{})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	_, err := c.PostsByUsers(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusTeapot, ErrUnexpected},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			r := chi.NewRouter()
			r.Delete(PathPosts+"/{id}", func(w http.ResponseWriter, req *http.Request) {
				writeJSON(w, tt.status, map[string]string{"message": "nope"})
			})
			c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

			err := c.DeletePost(context.Background(), "p1")
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestHTTPClient_DeleteNoContent(t *testing.T) {
	var gotID string
	r := chi.NewRouter()
	r.Delete(PathPosts+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		gotID = chi.URLParam(req, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	require.NoError(t, c.DeletePost(context.Background(), "p 1"))
	assert.Equal(t, "p 1", gotID)
}

func TestHTTPClient_AddComment(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathPosts+"/{id}/comments", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "p1", chi.URLParam(req, "id"))
		var in models.AddCommentRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "c1", "content": in.Body, "user": map[string]any{"id": "u1"}})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	cm, err := c.AddComment(context.Background(), "p1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "c1", cm.ID)
	assert.Equal(t, "hello", cm.Body)
}

func TestHTTPClient_Social(t *testing.T) {
	var added, removed string
	r := chi.NewRouter()
	r.Get(PathFriends, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "u2", "email": "b@c.d"}})
	})
	r.Post(PathFriends, func(w http.ResponseWriter, req *http.Request) {
		var in models.AddFriendRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		added = in.FriendID
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete(PathFriends+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		removed = chi.URLParam(req, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get(PathSocialInfo, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, models.SocialStats{PostsCount: 3, CommentsCount: 4, FriendsCount: 1})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})
	ctx := context.Background()

	friends, err := c.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "u2", friends[0].ID)

	require.NoError(t, c.AddFriend(ctx, "u3"))
	assert.Equal(t, "u3", added)
	require.NoError(t, c.RemoveFriend(ctx, "u2"))
	assert.Equal(t, "u2", removed)

	stats, err := c.SocialInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.PostsCount)
}

func TestHTTPClient_Hidden(t *testing.T) {
	hidden := false
	r := chi.NewRouter()
	r.Get(PathHiddenStatus, func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, models.HiddenStatus{IsHidden: hidden})
	})
	r.Post(PathHide, func(w http.ResponseWriter, req *http.Request) {
		hidden = true
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete(PathHide, func(w http.ResponseWriter, req *http.Request) {
		hidden = false
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})
	ctx := context.Background()

	require.NoError(t, c.Hide(ctx))
	ok, err := c.HiddenStatus(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Unhide(ctx))
	ok, err = c.HiddenStatus(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPClient_UpdateMeSendsPartial(t *testing.T) {
	r := chi.NewRouter()
	r.Patch(PathMe, func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"lastName":"King"}`, string(b))
		writeJSON(w, http.StatusOK, map[string]any{"id": "u1", "lastName": "King"})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	last := "King"
	u, err := c.UpdateMe(context.Background(), models.ProfileUpdate{LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "King", u.LastName)
}

func TestHTTPClient_UploadFile(t *testing.T) {
	r := chi.NewRouter()
	r.Post(PathUpload, func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseMultipartForm(1<<20))
		f, hdr, err := req.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "photo.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(b))
		writeJSON(w, http.StatusCreated, map[string]any{"file": map[string]string{"id": "f1", "path": "/files/f1.png"}})
	})
	c := newTestHTTPClient(t, r, &memTokens{access: "a1"})

	ref, err := c.UploadFile(context.Background(), "photo.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "f1", ref.ID)
	assert.Equal(t, "/files/f1.png", ref.Path)
}

func TestReadMessage(t *testing.T) {
	assert.Equal(t, "boom", readMessage(strings.NewReader(`{"message":"boom"}`)))
	assert.Equal(t, "a; b", readMessage(strings.NewReader(`{"message":["a","b"]}`)))
	assert.Equal(t, "plain text", readMessage(strings.NewReader("plain text\n")))
	assert.Equal(t, "", readMessage(strings.NewReader("")))
}
