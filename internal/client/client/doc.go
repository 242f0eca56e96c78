// Package client talks to the Nomadsoft REST backend.
//
// # Overview
//
//  1. Client is the transport contract covering auth, posts, comments,
//     friends, privacy and file upload endpoints.
//  2. Fetcher attaches the bearer token to every request and, on a 401,
//     performs exactly one refresh exchange and one replay of the request.
//  3. HTTPClient implements Client on top of Fetcher with JSON bodies.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses become *APIError,
// which unwraps to ErrUnauthorized, ErrValidation, ErrNotFound, ErrConflict,
// ErrUnavailable or ErrUnexpected; match with errors.Is.
//
// Fetcher itself never turns an HTTP status into an error: a request that is
// still unauthorized after the refresh attempt comes back as a 401 response.
package client
