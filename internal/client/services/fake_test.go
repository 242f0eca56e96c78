package services

import (
	"context"
	"io"
	"sync"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/client"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client. Unset hooks return zero values.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	LoginRet  *models.LoginResponse
	LoginErr  error
	RegErr    error
	LogoutErr error
	MeRet     *models.User
	MeErr     error
	UpdateRet *models.User
	UpdateErr error

	ListRet      []models.Post
	ListErr      error
	MineRet      []models.Post
	MineErr      error
	ByUsersRet   []models.Post
	ByUsersErr   error
	LastByUsers  []string
	GetPostRet   *models.Post
	GetPostErr   error
	CreateRet    *models.Post
	CreateErr    error
	DeleteErr    error
	CommentRet   *models.Comment
	CommentErr   error
	FriendsRet   []models.UserRef
	FriendsErr   error
	FriendErr    error
	InfoRet      *models.SocialStats
	InfoErr      error
	HiddenRet    bool
	HiddenErr    error
	HideErr      error
	UploadRet    *models.ImageRef
	UploadErr    error
	LastUpload   string
	LastUploaded []byte
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient { return &fakeClient{calls: map[string]int{}} }

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	f.hit("Login")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) error {
	f.hit("Register")
	return f.RegErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.hit("Logout")
	return f.LogoutErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.hit("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.hit("UpdateMe")
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	f.hit("ListPosts")
	return models.ClonePosts(f.ListRet), f.ListErr
}

func (f *fakeClient) MyPosts(ctx context.Context) ([]models.Post, error) {
	f.hit("MyPosts")
	return models.ClonePosts(f.MineRet), f.MineErr
}

func (f *fakeClient) PostsByUsers(ctx context.Context, userIDs []string) ([]models.Post, error) {
	f.hit("PostsByUsers")
	f.mu.Lock()
	f.LastByUsers = append([]string(nil), userIDs...)
	f.mu.Unlock()
	return models.ClonePosts(f.ByUsersRet), f.ByUsersErr
}

func (f *fakeClient) GetPost(ctx context.Context, id string) (*models.Post, error) {
	f.hit("GetPost")
	return f.GetPostRet, f.GetPostErr
}

func (f *fakeClient) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	f.hit("CreatePost")
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeletePost(ctx context.Context, id string) error {
	f.hit("DeletePost")
	return f.DeleteErr
}

func (f *fakeClient) AddComment(ctx context.Context, postID, body string) (*models.Comment, error) {
	f.hit("AddComment")
	return f.CommentRet, f.CommentErr
}

func (f *fakeClient) Friends(ctx context.Context) ([]models.UserRef, error) {
	f.hit("Friends")
	return f.FriendsRet, f.FriendsErr
}

func (f *fakeClient) AddFriend(ctx context.Context, userID string) error {
	f.hit("AddFriend")
	return f.FriendErr
}

func (f *fakeClient) RemoveFriend(ctx context.Context, userID string) error {
	f.hit("RemoveFriend")
	return f.FriendErr
}

func (f *fakeClient) SocialInfo(ctx context.Context) (*models.SocialStats, error) {
	f.hit("SocialInfo")
	return f.InfoRet, f.InfoErr
}

func (f *fakeClient) HiddenStatus(ctx context.Context) (bool, error) {
	f.hit("HiddenStatus")
	return f.HiddenRet, f.HiddenErr
}

func (f *fakeClient) Hide(ctx context.Context) error {
	f.hit("Hide")
	return f.HideErr
}

func (f *fakeClient) Unhide(ctx context.Context) error {
	f.hit("Unhide")
	return f.HideErr
}

func (f *fakeClient) UploadFile(ctx context.Context, name string, r io.Reader) (*models.ImageRef, error) {
	f.hit("UploadFile")
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.LastUpload = name
	f.LastUploaded = b
	return f.UploadRet, f.UploadErr
}

// ---- fake metadata repository ----

type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memRepo) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memRepo) List(context.Context) (map[string][]byte, error) { return m.data, nil }

func (m *memRepo) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// ---- fake session ----

type fakeSession struct {
	access, refresh string
	SetErr          error
	clears          int
}

func (s *fakeSession) Authenticated() bool { return s.access != "" }

func (s *fakeSession) Set(_ context.Context, access, refresh string) error {
	s.access, s.refresh = access, refresh
	return s.SetErr
}

func (s *fakeSession) Clear(context.Context) error {
	s.access, s.refresh = "", ""
	s.clears++
	return nil
}

func (s *fakeSession) UserID() string { return "" }

type staticIdentity string

func (s staticIdentity) UserID() string { return string(s) }
