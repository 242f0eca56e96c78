package client

import (
	"context"
	"io"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

// Client is the transport contract for the backend REST API.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	MyPosts(ctx context.Context) ([]models.Post, error)
	PostsByUsers(ctx context.Context, userIDs []string) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID, body string) (*models.Comment, error)

	Friends(ctx context.Context) ([]models.UserRef, error)
	AddFriend(ctx context.Context, userID string) error
	RemoveFriend(ctx context.Context, userID string) error
	SocialInfo(ctx context.Context) (*models.SocialStats, error)

	HiddenStatus(ctx context.Context) (bool, error)
	Hide(ctx context.Context) error
	Unhide(ctx context.Context) error

	UploadFile(ctx context.Context, name string, r io.Reader) (*models.ImageRef, error)
}
