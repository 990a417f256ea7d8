package domain

import "time"

// Post is a timeline entry about a cat, optionally carrying an attached
// feeling translation produced at compose time.
type Post struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index:idx_posts_user" json:"user_id"`
	CatID     string    `gorm:"type:text;not null;index:idx_posts_cat" json:"cat_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"type:text" json:"image_url,omitempty"`
	VideoURL  string    `gorm:"type:text" json:"video_url,omitempty"`
	Translation string  `gorm:"type:text" json:"translation,omitempty"`
	Mood      string    `gorm:"type:text" json:"mood,omitempty"`
	MoodFace  string    `gorm:"type:text" json:"mood_face,omitempty"`
	CreatedAt time.Time `gorm:"index:idx_posts_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string {
	return "posts"
}

// Like links a user to a post they liked.
type Like struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	PostID    string    `gorm:"type:text;not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex:idx_likes_post_user;index:idx_likes_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string {
	return "likes"
}

// Comment is a user reply on a post.
type Comment struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	PostID    string    `gorm:"type:text;not null;index:idx_comments_post" json:"post_id"`
	UserID    string    `gorm:"type:text;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string {
	return "comments"
}

// UserRef is the slim author shape embedded in feed responses.
type UserRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CatRef is the slim cat shape embedded in feed responses.
type CatRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// PostView is a post decorated with author/cat refs, counts, and the
// viewer-dependent liked/following flags.
type PostView struct {
	Post
	User           UserRef `json:"user"`
	Cat            CatRef  `json:"cat"`
	LikeCount      int64   `json:"like_count"`
	CommentCount   int64   `json:"comment_count"`
	Liked          bool    `json:"liked"`
	IsFollowingCat bool    `json:"is_following_cat"`
}

// CommentView is a comment decorated with its author ref.
type CommentView struct {
	Comment
	User UserRef `json:"user"`
}
