package domain

import "time"

// User represents an account holder who owns cats and writes posts.
type User struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}

// Session is a bearer token that identifies a user on the API.
// Token issuance is identity plumbing only; there is no credential check.
type Session struct {
	Token     string    `gorm:"type:text;primaryKey" json:"token"`
	UserID    string    `gorm:"type:text;not null;index:idx_sessions_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index:idx_sessions_expiry" json:"expires_at"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
