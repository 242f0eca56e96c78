// Package models holds the wire and cache types of the feed client.
// JSON tags follow the backend's field names.
package models

import "time"

// ImageRef points at an uploaded file.
type ImageRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// UserRef is a denormalized user snapshot embedded in posts and comments.
type UserRef struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Photo     *ImageRef `json:"photo,omitempty"`
}

// DisplayName prefers username, then full name, then email.
func (u UserRef) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name != "" {
		return name
	}
	return u.Email
}

type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"content"`
	Author    UserRef   `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID        string     `json:"id"`
	Title     string     `json:"name"`
	Body      string     `json:"content"`
	Author    UserRef    `json:"user"`
	Comments  []Comment  `json:"comments"`
	Images    []ImageRef `json:"images"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Clone returns a deep copy so cached posts are never shared with callers.
func (p Post) Clone() Post {
	out := p
	if p.Author.Photo != nil {
		photo := *p.Author.Photo
		out.Author.Photo = &photo
	}
	if p.Comments != nil {
		out.Comments = make([]Comment, len(p.Comments))
		for i, c := range p.Comments {
			out.Comments[i] = c
			if c.Author.Photo != nil {
				photo := *c.Author.Photo
				out.Comments[i].Author.Photo = &photo
			}
		}
	}
	if p.Images != nil {
		out.Images = append([]ImageRef(nil), p.Images...)
	}
	return out
}

// ClonePosts deep-copies a post list. A nil input yields an empty, non-nil slice.
func ClonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title  string     `json:"name"`
	Body   string     `json:"content"`
	Images []ImageRef `json:"images,omitempty"`
}

// AddCommentRequest is the body of POST /posts/:id/comments.
type AddCommentRequest struct {
	Body string `json:"content"`
}

// PostsByUsersRequest is the body of POST /posts/by-users.
type PostsByUsersRequest struct {
	UserIDs []string `json:"userIds"`
}
