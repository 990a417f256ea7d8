package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
)

// ErrNotOwner indicates the caller does not own the resource.
var ErrNotOwner = errors.New("caller does not own this resource")

// CatService handles cat profiles and follows.
type CatService struct {
	catRepo  *repository.CatRepository
	userRepo *repository.UserRepository
	logger   *logger.Logger
}

// NewCatService creates a new cat service.
func NewCatService(catRepo *repository.CatRepository, userRepo *repository.UserRepository, log *logger.Logger) *CatService {
	return &CatService{catRepo: catRepo, userRepo: userRepo, logger: log}
}

// CatDetail is a cat decorated with follower count and the viewer's
// following flag.
type CatDetail struct {
	domain.Cat
	FollowerCount int64 `json:"follower_count"`
	IsFollowing   bool  `json:"is_following"`
}

// Create registers a new cat owned by the user.
func (s *CatService) Create(ctx context.Context, userID string, cat *domain.Cat) (*domain.Cat, error) {
	now := time.Now()
	cat.ID = uuid.New().String()
	cat.UserID = userID
	cat.CreatedAt = now
	cat.UpdatedAt = now
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.logger.WithFields(logger.Fields{
		logger.FieldUserID: userID,
		logger.FieldCatID:  cat.ID,
	}).Info("cat registered")
	return cat, nil
}

// Get retrieves a cat with follower decoration for the given viewer.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: cat ID.
//   - viewerID: viewing user; empty for anonymous views.
// Returns:
//   - *CatDetail: cat with follower count and following flag.
//   - error: non-nil if the lookup fails.
func (s *CatService) Get(ctx context.Context, id, viewerID string) (*CatDetail, error) {
	cat, err := s.catRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.catRepo.FollowerCount(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &CatDetail{Cat: *cat, FollowerCount: count}
	if viewerID != "" {
		following, err := s.catRepo.IsFollowing(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		detail.IsFollowing = following
	}
	return detail, nil
}

// ListByUser retrieves all cats owned by a user.
func (s *CatService) ListByUser(ctx context.Context, userID string) ([]domain.Cat, error) {
	return s.catRepo.ListByUser(ctx, userID)
}

// Update updates a cat's profile. Only the owner may update.
func (s *CatService) Update(ctx context.Context, userID, catID string, update *domain.Cat) (*domain.Cat, error) {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrNotOwner
	}

	if update.Name != "" {
		cat.Name = update.Name
	}
	if update.Breed != "" {
		cat.Breed = update.Breed
	}
	if update.Age > 0 {
		cat.Age = update.Age
	}
	if update.Gender != "" {
		cat.Gender = update.Gender
	}
	cat.Personality = update.Personality
	if update.PhotoURL != "" {
		cat.PhotoURL = update.PhotoURL
	}
	cat.UpdatedAt = time.Now()

	if err := s.catRepo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete removes a cat. Only the owner may delete.
func (s *CatService) Delete(ctx context.Context, userID, catID string) error {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return err
	}
	if cat.UserID != userID {
		return ErrNotOwner
	}
	return s.catRepo.Delete(ctx, catID)
}

// ErrOwnCatFollow indicates a user tried to follow their own cat.
var ErrOwnCatFollow = errors.New("cannot follow your own cat")

// ToggleFollow flips the user's follow on a cat and reports the new state.
// Users cannot follow their own cats.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: acting user.
//   - catID: cat to follow or unfollow.
// Returns:
//   - bool: true when the cat is followed after the toggle.
//   - error: ErrOwnCatFollow, a missing cat, or storage errors.
func (s *CatService) ToggleFollow(ctx context.Context, userID, catID string) (bool, error) {
	cat, err := s.catRepo.GetByID(ctx, catID)
	if err != nil {
		return false, err
	}
	if cat.UserID == userID {
		return false, ErrOwnCatFollow
	}
	following, err := s.catRepo.IsFollowing(ctx, userID, catID)
	if err != nil {
		return false, err
	}
	if following {
		return false, s.catRepo.Unfollow(ctx, userID, catID)
	}
	return true, s.catRepo.Follow(ctx, &domain.Follow{
		ID:         uuid.New().String(),
		FollowerID: userID,
		CatID:      catID,
		CreatedAt:  time.Now(),
	})
}

// FollowedCat is a followed cat decorated with its owner and follower count.
type FollowedCat struct {
	domain.Cat
	User          domain.UserRef `json:"user"`
	FollowerCount int64          `json:"follower_count"`
}

// Following retrieves the cats a user follows, newest follow first, each
// decorated with its owner and follower count.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - followerID: the following user.
// Returns:
//   - []FollowedCat: followed cats; empty for users following nothing.
//   - error: non-nil if any query fails.
func (s *CatService) Following(ctx context.Context, followerID string) ([]FollowedCat, error) {
	cats, err := s.catRepo.ListFollowed(ctx, followerID)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return []FollowedCat{}, nil
	}

	catIDs := make([]string, 0, len(cats))
	ownerIDs := make([]string, 0, len(cats))
	for _, c := range cats {
		catIDs = append(catIDs, c.ID)
		ownerIDs = append(ownerIDs, c.UserID)
	}
	owners, err := s.userRepo.GetRefs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.catRepo.FollowerCounts(ctx, catIDs)
	if err != nil {
		return nil, err
	}

	followed := make([]FollowedCat, 0, len(cats))
	for _, c := range cats {
		followed = append(followed, FollowedCat{
			Cat:           c,
			User:          owners[c.UserID],
			FollowerCount: counts[c.ID],
		})
	}
	return followed, nil
}

// Followers retrieves the users following a cat, newest follow first.
// An unknown cat yields an empty list.
func (s *CatService) Followers(ctx context.Context, catID string) ([]domain.UserRef, error) {
	ids, err := s.catRepo.ListFollowers(ctx, catID)
	if err != nil {
		return nil, err
	}
	refs, err := s.userRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	users := make([]domain.UserRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			users = append(users, ref)
		}
	}
	return users, nil
}

// SearchByBreed retrieves cats whose breed matches the query.
func (s *CatService) SearchByBreed(ctx context.Context, breed string, limit int) ([]domain.Cat, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.catRepo.SearchByBreed(ctx, breed, limit)
}
