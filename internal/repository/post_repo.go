package repository

import (
	"context"
	"time"

	"github.com/yuna/nekotalk/internal/domain"
	"gorm.io/gorm"
)

// PostRepository handles post, like, and comment data operations.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post record.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by its ID.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post and its likes and comments.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Like{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Comment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, "id = ?", id).Error
	})
}

// ListFeed retrieves the global feed, newest first, paged by a created_at
// cursor.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - before: exclusive upper bound on created_at; zero means from the top.
//   - limit: maximum rows to return.
// Returns:
//   - []domain.Post: feed page.
//   - error: non-nil if the query fails.
func (r *PostRepository) ListFeed(ctx context.Context, before time.Time, limit int) ([]domain.Post, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if !before.IsZero() {
		q = q.Where("created_at < ?", before)
	}
	var posts []domain.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByCat retrieves a cat's posts, newest first, paged by created_at.
func (r *PostRepository) ListByCat(ctx context.Context, catID string, before time.Time, limit int) ([]domain.Post, error) {
	q := r.db.WithContext(ctx).Where("cat_id = ?", catID).Order("created_at DESC").Limit(limit)
	if !before.IsZero() {
		q = q.Where("created_at < ?", before)
	}
	var posts []domain.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser retrieves a user's posts, newest first, paged by created_at.
func (r *PostRepository) ListByUser(ctx context.Context, userID string, before time.Time, limit int) ([]domain.Post, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Limit(limit)
	if !before.IsZero() {
		q = q.Where("created_at < ?", before)
	}
	var posts []domain.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByUser returns the number of posts a user has published.
func (r *PostRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Search retrieves posts whose content matches the query substring.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - query: content substring to match.
//   - sort: "latest" orders by created_at; "popular" orders by like count.
//   - limit: maximum rows to return.
// Returns:
//   - []domain.Post: matching posts.
//   - error: non-nil if the query fails.
func (r *PostRepository) Search(ctx context.Context, query, sort string, limit int) ([]domain.Post, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("content LIKE ?", "%"+query+"%").
		Limit(limit)

	if sort == "popular" {
		q = q.Select("posts.*").
			Joins("LEFT JOIN likes ON likes.post_id = posts.id").
			Group("posts.id").
			Order("COUNT(likes.id) DESC, posts.created_at DESC")
	} else {
		q = q.Order("created_at DESC")
	}

	var posts []domain.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// AddLike records a like. Re-liking an already liked post is a no-op.
func (r *PostRepository) AddLike(ctx context.Context, like *domain.Like) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Where("post_id = ? AND user_id = ?", like.PostID, like.UserID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(like).Error
}

// RemoveLike removes a like edge between a user and a post.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Like{}, "post_id = ? AND user_id = ?", postID, userID).Error
}

// LikeCounts returns like counts for the given posts.
func (r *PostRepository) LikeCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}

// LikedSet reports which of the given posts the user has liked.
func (r *PostRepository) LikedSet(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}
	var likes []domain.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		liked[l.PostID] = true
	}
	return liked, nil
}

// ListLikedByUser retrieves posts the user has liked, most recently liked
// first.
func (r *PostRepository) ListLikedByUser(ctx context.Context, userID string, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).Model(&domain.Post{}).
		Select("posts.*").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComment inserts a new comment record.
func (r *PostRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListComments retrieves a post's comments, oldest first.
func (r *PostRepository) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentCounts returns comment counts for the given posts.
func (r *PostRepository) CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	return counts, nil
}
