package domain

import "time"

// Cat represents a registered cat belonging to a user.
type Cat struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	UserID      string    `gorm:"type:text;not null;index:idx_cats_user" json:"user_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Breed       string    `gorm:"type:text;not null" json:"breed"`
	Age         int       `gorm:"not null" json:"age"`
	Gender      string    `gorm:"type:text;not null" json:"gender"`
	Personality string    `gorm:"type:text" json:"personality,omitempty"`
	PhotoURL    string    `gorm:"type:text" json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Cat.
func (Cat) TableName() string {
	return "cats"
}

// Profile extracts the prompt-facing attributes of the cat.
func (c *Cat) Profile() CatProfile {
	return CatProfile{
		Name:        c.Name,
		Breed:       c.Breed,
		Age:         c.Age,
		Gender:      c.Gender,
		Personality: c.Personality,
	}
}

// CatProfile holds the static attributes used to personalize prompts.
// It is a request-scoped value; the pipeline never mutates it.
type CatProfile struct {
	Name        string `json:"name"`
	Breed       string `json:"breed"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Personality string `json:"personality,omitempty"`
}

// Follow links a user to a cat they follow.
type Follow struct {
	ID         string    `gorm:"type:text;primaryKey" json:"id"`
	FollowerID string    `gorm:"type:text;not null;uniqueIndex:idx_follows_follower_cat" json:"follower_id"`
	CatID      string    `gorm:"type:text;not null;uniqueIndex:idx_follows_follower_cat;index:idx_follows_cat" json:"cat_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string {
	return "follows"
}
