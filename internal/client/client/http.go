package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// Endpoint paths relative to the API base URL.
const (
	PathLogin        = "/auth/email/login"
	PathRegister     = "/auth/email/register"
	PathRefresh      = "/auth/refresh"
	PathLogout       = "/auth/logout"
	PathMe           = "/auth/me"
	PathPosts        = "/posts"
	PathMyPosts      = "/posts/my-posts"
	PathPostsByUsers = "/posts/by-users"
	PathFriends      = "/social/friends"
	PathSocialInfo   = "/social/info"
	PathHiddenStatus = "/hidden-users/status"
	PathHide         = "/hidden-users/hide"
	PathUpload       = "/files/upload"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	fetcher *Fetcher
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL (including the API prefix, e.g.
// https://host/api/v1). A nil httpClient means a default client with no
// timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client, tokens TokenStore, log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &HTTPClient{
		baseURL: baseURL,
		http:    httpClient,
		fetcher: NewFetcher(httpClient, tokens, baseURL+PathRefresh, log),
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.call(ctx, false, http.MethodPost, PathLogin, models.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.call(ctx, false, http.MethodPost, PathRegister, req, nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.call(ctx, true, http.MethodPost, PathLogout, nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.call(ctx, true, http.MethodGet, PathMe, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.call(ctx, true, http.MethodPatch, PathMe, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	return c.posts(ctx, http.MethodGet, PathPosts, nil)
}

func (c *HTTPClient) MyPosts(ctx context.Context) ([]models.Post, error) {
	return c.posts(ctx, http.MethodGet, PathMyPosts, nil)
}

func (c *HTTPClient) PostsByUsers(ctx context.Context, userIDs []string) ([]models.Post, error) {
	return c.posts(ctx, http.MethodPost, PathPostsByUsers, models.PostsByUsersRequest{UserIDs: userIDs})
}

func (c *HTTPClient) posts(ctx context.Context, method, path string, in any) ([]models.Post, error) {
	var out []models.Post
	if err := c.call(ctx, true, method, path, in, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Post{}
	}
	return out, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.call(ctx, true, http.MethodGet, postPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.call(ctx, true, http.MethodPost, PathPosts, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.call(ctx, true, http.MethodDelete, postPath(id), nil, nil)
}

func (c *HTTPClient) AddComment(ctx context.Context, postID, body string) (*models.Comment, error) {
	var out models.Comment
	if err := c.call(ctx, true, http.MethodPost, postPath(postID)+"/comments", models.AddCommentRequest{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Friends(ctx context.Context) ([]models.UserRef, error) {
	var out []models.UserRef
	if err := c.call(ctx, true, http.MethodGet, PathFriends, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddFriend(ctx context.Context, userID string) error {
	return c.call(ctx, true, http.MethodPost, PathFriends, models.AddFriendRequest{FriendID: userID}, nil)
}

func (c *HTTPClient) RemoveFriend(ctx context.Context, userID string) error {
	return c.call(ctx, true, http.MethodDelete, PathFriends+"/"+url.PathEscape(userID), nil, nil)
}

func (c *HTTPClient) SocialInfo(ctx context.Context) (*models.SocialStats, error) {
	var out models.SocialStats
	if err := c.call(ctx, true, http.MethodGet, PathSocialInfo, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) HiddenStatus(ctx context.Context) (bool, error) {
	var out models.HiddenStatus
	if err := c.call(ctx, true, http.MethodGet, PathHiddenStatus, nil, &out); err != nil {
		return false, err
	}
	return out.IsHidden, nil
}

func (c *HTTPClient) Hide(ctx context.Context) error {
	return c.call(ctx, true, http.MethodPost, PathHide, nil, nil)
}

func (c *HTTPClient) Unhide(ctx context.Context) error {
	return c.call(ctx, true, http.MethodDelete, PathHide, nil, nil)
}

func (c *HTTPClient) UploadFile(ctx context.Context, name string, r io.Reader) (*models.ImageRef, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathUpload, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.UploadResponse
	if err := c.roundTrip(req, true, &out); err != nil {
		return nil, err
	}
	return &out.File, nil
}

// call sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *HTTPClient) call(ctx context.Context, authed bool, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req, authed, out)
}

func (c *HTTPClient) roundTrip(req *http.Request, authed bool, out any) error {
	var (
		resp *http.Response
		err  error
	)
	if authed {
		resp, err = c.fetcher.Do(req)
	} else {
		resp, err = c.http.Do(req)
		if err != nil {
			err = fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, ErrUnavailable, err)
		}
	}
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(resp.StatusCode, readMessage(resp.Body))
		c.log.Debug(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, apiErr)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func postPath(id string) string {
	return PathPosts + "/" + url.PathEscape(id)
}

// readMessage extracts a human-readable message from an error body. The
// backend uses either {"message": "..."} or {"errors": {"field": "reason"}}.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 16<<10))
	if err != nil || len(b) == 0 {
		return ""
	}

	var body struct {
		Message any               `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return strings.TrimSpace(string(b))
	}

	switch m := body.Message.(type) {
	case string:
		if m != "" {
			return m
		}
	case []any:
		parts := make([]string, 0, len(m))
		for _, v := range m {
			parts = append(parts, fmt.Sprint(v))
		}
		return strings.Join(parts, "; ")
	}

	if len(body.Errors) > 0 {
		keys := make([]string, 0, len(body.Errors))
		for k := range body.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+body.Errors[k])
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
