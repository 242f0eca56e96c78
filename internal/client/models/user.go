package models

import (
	"encoding/json"
	"time"
)

// IDRef is a reference to a backend entity by id only.
type IDRef struct {
	ID string `json:"id"`
}

// User is the full profile returned by /auth/me.
type User struct {
	UserRef
	Role      *IDRef     `json:"role,omitempty"`
	Status    *IDRef     `json:"status,omitempty"`
	Provider  string     `json:"provider,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenPair is returned by login and refresh. TokenExpires is a unix
// timestamp in milliseconds.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	TokenExpires int64  `json:"tokenExpires"`
}

type LoginResponse struct {
	TokenPair
	User User `json:"user"`
}

// ProfileUpdate is a partial update of the caller's profile. Nil fields are
// left unchanged by the backend. RemovePhoto sends an explicit null photo and
// wins over Photo.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Username    *string
	Email       *string
	Photo       *IDRef
	RemovePhoto bool
}

func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Username == nil &&
		u.Email == nil && u.Photo == nil && !u.RemovePhoto
}

func (u ProfileUpdate) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	if u.FirstName != nil {
		m["firstName"] = *u.FirstName
	}
	if u.LastName != nil {
		m["lastName"] = *u.LastName
	}
	if u.Username != nil {
		m["username"] = *u.Username
	}
	if u.Email != nil {
		m["email"] = *u.Email
	}
	switch {
	case u.RemovePhoto:
		m["photo"] = nil
	case u.Photo != nil:
		m["photo"] = u.Photo
	}
	return json.Marshal(m)
}
