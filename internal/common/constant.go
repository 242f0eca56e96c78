// Package common contains shared constants and sentinel errors used across
// the feed client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates a client request with backend logs.
const RequestIDHeaderName = "X-Request-ID"

// Keys of the device key-value store.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
	KeyPostsCache   = "posts_cache"
	KeyActiveTab    = "posts_active_tab"
	KeySocialStats  = "social_stats"
)
