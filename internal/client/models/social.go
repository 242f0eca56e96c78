package models

// SocialStats is the snapshot returned by GET /social/info.
type SocialStats struct {
	PostsCount    int `json:"postsCount"`
	CommentsCount int `json:"commentsCount"`
	FriendsCount  int `json:"friendsCount"`
}

// AddFriendRequest is the body of POST /social/friends.
type AddFriendRequest struct {
	FriendID string `json:"friendId"`
}

// HiddenStatus reports whether the caller's posts are hidden from the
// global feed.
type HiddenStatus struct {
	IsHidden bool `json:"isHidden"`
}

// UploadResponse is returned by POST /files/upload.
type UploadResponse struct {
	File ImageRef `json:"file"`
}
