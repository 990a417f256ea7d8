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

// ErrEmailTaken indicates the registration email is already in use.
var ErrEmailTaken = errors.New("email already registered")

// ErrSessionInvalid indicates the bearer token is unknown or expired.
var ErrSessionInvalid = errors.New("session invalid or expired")

// UserService handles account registration, session identity, and public
// profiles.
type UserService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	catRepo     *repository.CatRepository
	postRepo    *repository.PostRepository
	logger      *logger.Logger
	sessionTTL  time.Duration
}

// NewUserService creates a new user service.
// Parameters:
//   - userRepo: repository for user records.
//   - sessionRepo: repository for session tokens.
//   - catRepo: repository for profile cat and follow counts.
//   - postRepo: repository for profile post counts.
//   - log: logger instance.
//   - sessionTTL: lifetime of issued session tokens.
// Returns:
//   - *UserService: initialized user service.
func NewUserService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, catRepo *repository.CatRepository, postRepo *repository.PostRepository, log *logger.Logger, sessionTTL time.Duration) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		catRepo:     catRepo,
		postRepo:    postRepo,
		logger:      log,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a user account and issues its first session token.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - name: display name, required.
//   - email: unique account email, required.
//   - bio: optional profile text.
// Returns:
//   - *domain.User: the created user.
//   - *domain.Session: a fresh session token for the user.
//   - error: ErrEmailTaken if the email exists, otherwise storage errors.
func (s *UserService) Register(ctx context.Context, name, email, bio string) (*domain.User, *domain.Session, error) {
	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrEmailTaken
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Bio:       bio,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.issueSession(ctx, user.ID, now)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logger.Fields{
		logger.FieldUserID: user.ID,
	}).Info("user registered")

	return user, session, nil
}

// issueSession creates and persists a new session token for the user.
func (s *UserService) issueSession(ctx context.Context, userID string, now time.Time) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate resolves a bearer token to its user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - token: bearer session token.
// Returns:
//   - *domain.User: the authenticated user.
//   - error: ErrSessionInvalid for unknown or expired tokens.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	if session.Expired(time.Now()) {
		return nil, ErrSessionInvalid
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ProfileCat is a cat on a public profile with its follower count.
type ProfileCat struct {
	domain.Cat
	FollowerCount int64 `json:"follower_count"`
}

// UserProfile is the public shape of an account. The email stays private.
type UserProfile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Bio            string       `json:"bio,omitempty"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	PostCount      int64        `json:"post_count"`
	FollowingCount int64        `json:"following_count"`
	Cats           []ProfileCat `json:"cats"`
}

// Profile builds the public profile of a user: identity fields, post and
// following counts, and their cats with follower counts.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: user ID.
// Returns:
//   - *UserProfile: the public profile.
//   - error: gorm.ErrRecordNotFound for unknown users.
func (s *UserService) Profile(ctx context.Context, id string) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	postCount, err := s.postRepo.CountByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.catRepo.FollowingCount(ctx, id)
	if err != nil {
		return nil, err
	}
	cats, err := s.catRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	catIDs := make([]string, 0, len(cats))
	for _, c := range cats {
		catIDs = append(catIDs, c.ID)
	}
	followerCounts, err := s.catRepo.FollowerCounts(ctx, catIDs)
	if err != nil {
		return nil, err
	}

	profileCats := make([]ProfileCat, 0, len(cats))
	for _, c := range cats {
		profileCats = append(profileCats, ProfileCat{Cat: c, FollowerCount: followerCounts[c.ID]})
	}

	return &UserProfile{
		ID:             user.ID,
		Name:           user.Name,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		CreatedAt:      user.CreatedAt,
		PostCount:      postCount,
		FollowingCount: followingCount,
		Cats:           profileCats,
	}, nil
}

// UpdateProfile updates the caller's display name, bio, and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, name, bio, avatarURL string) (*domain.User, error) {
	if name != "" {
		user.Name = name
	}
	user.Bio = bio
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
