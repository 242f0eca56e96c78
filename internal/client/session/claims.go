package session

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/common"
)

// userID accepts both string and numeric ids.
type userID string

func (u *userID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*u = userID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*u = userID(strconv.FormatInt(i, 10))
		return nil
	}
	*u = userID(n.String())
	return nil
}

// Claims are the fields the client reads from the access token.
type Claims struct {
	UserID userID `json:"id"`
	jwt.RegisteredClaims
}

// CallerID returns the caller's user id, falling back to "sub".
func (c *Claims) CallerID() string {
	if c.UserID != "" {
		return string(c.UserID)
	}
	return c.RegisteredClaims.Subject
}

// Claims decodes the current access token without verifying its signature;
// the backend stays the authority on validity.
func (s *TokenStore) Claims() (*Claims, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, common.ErrNoSession
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// UserID returns the caller's id from the access token, "" if unknown.
func (s *TokenStore) UserID() string {
	claims, err := s.Claims()
	if err != nil {
		return ""
	}
	return claims.CallerID()
}
