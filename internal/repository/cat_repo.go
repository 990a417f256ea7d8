package repository

import (
	"context"

	"github.com/yuna/nekotalk/internal/domain"
	"gorm.io/gorm"
)

// CatRepository handles cat and follow data operations.
type CatRepository struct {
	db *gorm.DB
}

// NewCatRepository creates a new CatRepository.
func NewCatRepository(db *gorm.DB) *CatRepository {
	return &CatRepository{db: db}
}

// Create inserts a new cat record.
func (r *CatRepository) Create(ctx context.Context, cat *domain.Cat) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// GetByID retrieves a cat by its ID.
func (r *CatRepository) GetByID(ctx context.Context, id string) (*domain.Cat, error) {
	var cat domain.Cat
	if err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// ListByUser retrieves all cats owned by a user, newest first.
func (r *CatRepository) ListByUser(ctx context.Context, userID string) ([]domain.Cat, error) {
	var cats []domain.Cat
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// Update updates an existing cat record.
func (r *CatRepository) Update(ctx context.Context, cat *domain.Cat) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete removes a cat record.
func (r *CatRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Cat{}, "id = ?", id).Error
}

// SearchByBreed retrieves cats whose breed matches the query substring.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - breed: breed substring to match, case-insensitive on most collations.
//   - limit: maximum rows to return.
// Returns:
//   - []domain.Cat: matching cats, newest first.
//   - error: non-nil if the query fails.
func (r *CatRepository) SearchByBreed(ctx context.Context, breed string, limit int) ([]domain.Cat, error) {
	var cats []domain.Cat
	err := r.db.WithContext(ctx).
		Where("breed LIKE ?", "%"+breed+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// Follow records that a user follows a cat. Duplicate follows are ignored.
func (r *CatRepository) Follow(ctx context.Context, follow *domain.Follow) error {
	err := r.db.WithContext(ctx).Create(follow).Error
	if err == gorm.ErrDuplicatedKey {
		return nil
	}
	return err
}

// Unfollow removes a follow edge between a user and a cat.
func (r *CatRepository) Unfollow(ctx context.Context, followerID, catID string) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Follow{}, "follower_id = ? AND cat_id = ?", followerID, catID).Error
}

// IsFollowing checks whether a user follows a cat.
func (r *CatRepository) IsFollowing(ctx context.Context, followerID, catID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND cat_id = ?", followerID, catID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerCount returns the number of users following a cat.
func (r *CatRepository) FollowerCount(ctx context.Context, catID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("cat_id = ?", catID).
		Count(&count).Error
	return count, err
}

// FollowingCount returns the number of cats a user follows.
func (r *CatRepository) FollowingCount(ctx context.Context, followerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}

// FollowerCounts returns the follower counts for a set of cats. Cats with
// no followers are absent from the map.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - catIDs: cat IDs to count.
// Returns:
//   - map[string]int64: counts keyed by cat ID.
//   - error: non-nil if the query fails.
func (r *CatRepository) FollowerCounts(ctx context.Context, catIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(catIDs))
	if len(catIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		CatID string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Select("cat_id, COUNT(*) as count").
		Where("cat_id IN ?", catIDs).
		Group("cat_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CatID] = row.Count
	}
	return counts, nil
}

// ListFollowers returns the IDs of users following a cat, newest follow
// first. An unknown cat yields an empty list.
func (r *CatRepository) ListFollowers(ctx context.Context, catID string) ([]string, error) {
	var follows []domain.Follow
	err := r.db.WithContext(ctx).
		Where("cat_id = ?", catID).
		Order("created_at DESC").
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}
	return ids, nil
}

// ListFollowed retrieves the cats a user follows, newest follow first.
func (r *CatRepository) ListFollowed(ctx context.Context, followerID string) ([]domain.Cat, error) {
	var cats []domain.Cat
	err := r.db.WithContext(ctx).Model(&domain.Cat{}).
		Select("cats.*").
		Joins("JOIN follows ON follows.cat_id = cats.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC").
		Find(&cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// FollowedSet reports which of the given cats the user follows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - followerID: viewing user; empty means no follows.
//   - catIDs: cat IDs to check.
// Returns:
//   - map[string]bool: set of followed cat IDs.
//   - error: non-nil if the query fails.
func (r *CatRepository) FollowedSet(ctx context.Context, followerID string, catIDs []string) (map[string]bool, error) {
	followed := make(map[string]bool, len(catIDs))
	if followerID == "" || len(catIDs) == 0 {
		return followed, nil
	}
	var follows []domain.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND cat_id IN ?", followerID, catIDs).
		Find(&follows).Error
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		followed[f.CatID] = true
	}
	return followed, nil
}

// GetRefs loads the slim cat shapes for a set of cat IDs.
func (r *CatRepository) GetRefs(ctx context.Context, ids []string) (map[string]domain.CatRef, error) {
	refs := make(map[string]domain.CatRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	var cats []domain.Cat
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return nil, err
	}
	for _, c := range cats {
		refs[c.ID] = domain.CatRef{ID: c.ID, Name: c.Name, Breed: c.Breed, PhotoURL: c.PhotoURL}
	}
	return refs, nil
}
