package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

// TokenStore is the token pair holder the Fetcher reads and updates.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	Set(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// Fetcher sends requests with the current bearer token and handles one-shot
// token refresh on 401.
type Fetcher struct {
	http       *http.Client
	tokens     TokenStore
	refreshURL string
	log        logging.Logger

	// refreshMu serializes refresh exchanges so concurrent 401s do not spend
	// a rotated refresh token twice.
	refreshMu sync.Mutex
}

func NewFetcher(httpClient *http.Client, tokens TokenStore, refreshURL string, log logging.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Fetcher{http: httpClient, tokens: tokens, refreshURL: refreshURL, log: log.With("component", "fetcher")}
}

// Do sends req with Authorization: Bearer <access>. If the response is 401
// it tries one refresh exchange; on success the request is replayed once and
// that response is returned whatever its status. If the refresh fails the
// tokens are cleared and the original 401 response is returned.
//
// Only transport failures are returned as errors (wrapping ErrUnavailable).
func (f *Fetcher) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	access := f.tokens.AccessToken()
	resp, err := f.send(req, access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	retry, err := rewind(req)
	if err != nil {
		f.log.Warn(ctx, "request body cannot be replayed, skipping refresh", "url", req.URL.Path, "error", err)
		return resp, nil
	}

	fresh, ok := f.refresh(ctx, access)
	if !ok {
		return resp, nil
	}

	drain(resp)
	return f.send(retry, fresh)
}

func (f *Fetcher) send(req *http.Request, access string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if access != "" {
		out.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
	}
	if out.Header.Get(common.RequestIDHeaderName) == "" {
		out.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := f.http.Do(out)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, req.URL.Path, ErrUnavailable, err)
	}
	return resp, nil
}

// refresh returns a usable access token. If another call already rotated the
// token since stale was sent, that token is reused without an exchange.
func (f *Fetcher) refresh(ctx context.Context, stale string) (string, bool) {
	f.refreshMu.Lock()
	defer f.refreshMu.Unlock()

	if current := f.tokens.AccessToken(); current != "" && current != stale {
		return current, true
	}

	pair, err := f.exchange(ctx, f.tokens.RefreshToken())
	if err != nil {
		f.log.Warn(ctx, "token refresh failed, ending session", "error", err)
		if cerr := f.tokens.Clear(ctx); cerr != nil {
			f.log.Error(ctx, "failed to clear tokens", "error", cerr)
		}
		return "", false
	}

	refresh := pair.RefreshToken
	if refresh == "" {
		refresh = f.tokens.RefreshToken()
	}
	if err := f.tokens.Set(ctx, pair.Token, refresh); err != nil {
		f.log.Warn(ctx, "refreshed tokens not persisted", "error", err)
	}
	f.log.Debug(ctx, "access token refreshed")
	return pair.Token, true
}

func (f *Fetcher) exchange(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrNoSession
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.refreshURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.send(req, refreshToken)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewAPIError(resp.StatusCode, readMessage(resp.Body))
	}

	var pair models.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.Token == "" {
		return nil, fmt.Errorf("%w: empty access token", common.ErrInvalidToken)
	}
	return &pair, nil
}

// rewind prepares a copy of req whose body can be sent again.
func rewind(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body is not replayable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
