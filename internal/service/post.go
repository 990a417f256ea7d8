package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
)

// PostService handles the timeline: posts, likes, comments, and search.
type PostService struct {
	postRepo *repository.PostRepository
	catRepo  *repository.CatRepository
	userRepo *repository.UserRepository
	logger   *logger.Logger
}

// NewPostService creates a new post service.
// Parameters:
//   - postRepo: repository for posts, likes, and comments.
//   - catRepo: repository for cat refs and follow decoration.
//   - userRepo: repository for author refs.
//   - log: logger instance.
// Returns:
//   - *PostService: initialized post service.
func NewPostService(postRepo *repository.PostRepository, catRepo *repository.CatRepository, userRepo *repository.UserRepository, log *logger.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		catRepo:  catRepo,
		userRepo: userRepo,
		logger:   log,
	}
}

// CreatePostInput carries the compose-time fields of a new post. The
// translation trio is populated when the author attached a feeling
// translation while composing.
type CreatePostInput struct {
	CatID       string
	Content     string
	ImageURL    string
	VideoURL    string
	Translation string
	Mood        string
	MoodFace    string
}

// Create publishes a post about one of the caller's cats.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: author user ID.
//   - in: compose-time post fields.
// Returns:
//   - *domain.Post: the created post.
//   - error: ErrNotOwner if the cat belongs to someone else.
func (s *PostService) Create(ctx context.Context, userID string, in CreatePostInput) (*domain.Post, error) {
	cat, err := s.catRepo.GetByID(ctx, in.CatID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrNotOwner
	}

	now := time.Now()
	post := &domain.Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		CatID:       in.CatID,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		VideoURL:    in.VideoURL,
		Translation: in.Translation,
		Mood:        in.Mood,
		MoodFace:    in.MoodFace,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.WithFields(logger.Fields{
		logger.FieldUserID: userID,
		logger.FieldCatID:  in.CatID,
	}).Info("post created")

	return post, nil
}

// GetFeed retrieves a page of the global feed decorated for the viewer.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - viewerID: viewing user; empty for anonymous views.
//   - before: exclusive created_at cursor; zero means from the top.
//   - limit: page size, clamped to [1, 50].
// Returns:
//   - []domain.PostView: decorated feed page, newest first.
//   - error: non-nil if any query fails.
func (s *PostService) GetFeed(ctx context.Context, viewerID string, before time.Time, limit int) ([]domain.PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	posts, err := s.postRepo.ListFeed(ctx, before, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, viewerID, posts)
}

// GetByCat retrieves a page of a cat's posts decorated for the viewer.
func (s *PostService) GetByCat(ctx context.Context, viewerID, catID string, before time.Time, limit int) ([]domain.PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	posts, err := s.postRepo.ListByCat(ctx, catID, before, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, viewerID, posts)
}

// GetByUser retrieves a page of a user's posts decorated for the viewer.
func (s *PostService) GetByUser(ctx context.Context, viewerID, userID string, before time.Time, limit int) ([]domain.PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	posts, err := s.postRepo.ListByUser(ctx, userID, before, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, viewerID, posts)
}

// Get retrieves a single post decorated for the viewer.
func (s *PostService) Get(ctx context.Context, viewerID, postID string) (*domain.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.decorate(ctx, viewerID, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Delete removes a post. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the user's like on a post and reports the new state.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: acting user.
//   - postID: post to like or unlike.
// Returns:
//   - bool: true when the post is liked after the toggle.
//   - error: non-nil if the post is missing or storage fails.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	liked, err := s.postRepo.LikedSet(ctx, userID, []string{postID})
	if err != nil {
		return false, err
	}
	if liked[postID] {
		return false, s.postRepo.RemoveLike(ctx, postID, userID)
	}
	return true, s.postRepo.AddLike(ctx, &domain.Like{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	})
}

// ListLiked retrieves posts the user has liked, decorated for the viewer.
func (s *PostService) ListLiked(ctx context.Context, userID string, limit int) ([]domain.PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	posts, err := s.postRepo.ListLikedByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, userID, posts)
}

// Comment adds a comment on a post and returns it decorated with its author.
func (s *PostService) Comment(ctx context.Context, userID, postID, content string) (*domain.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	refs, err := s.userRepo.GetRefs(ctx, []string{userID})
	if err != nil {
		return nil, err
	}
	return &domain.CommentView{Comment: *comment, User: refs[userID]}, nil
}

// ListComments retrieves a post's comments decorated with their authors.
func (s *PostService) ListComments(ctx context.Context, postID string) ([]domain.CommentView, error) {
	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	refs, err := s.userRepo.GetRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, domain.CommentView{Comment: c, User: refs[c.UserID]})
	}
	return views, nil
}

// Search retrieves posts matching the query, decorated for the viewer.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - viewerID: viewing user; empty for anonymous views.
//   - query: content substring to match.
//   - sort: "latest" or "popular"; anything else falls back to latest.
//   - limit: page size, clamped to [1, 50].
// Returns:
//   - []domain.PostView: decorated matches.
//   - error: non-nil if any query fails.
func (s *PostService) Search(ctx context.Context, viewerID, query, sort string, limit int) ([]domain.PostView, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	posts, err := s.postRepo.Search(ctx, query, sort, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, viewerID, posts)
}

// decorate builds PostViews: author/cat refs, like and comment counts, and
// the viewer-dependent liked/following flags.
func (s *PostService) decorate(ctx context.Context, viewerID string, posts []domain.Post) ([]domain.PostView, error) {
	if len(posts) == 0 {
		return []domain.PostView{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	userIDs := make([]string, 0, len(posts))
	catIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDs = append(userIDs, p.UserID)
		catIDs = append(catIDs, p.CatID)
	}

	userRefs, err := s.userRepo.GetRefs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	catRefs, err := s.catRepo.GetRefs(ctx, catIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.postRepo.LikeCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.postRepo.CommentCounts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.postRepo.LikedSet(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	followed, err := s.catRepo.FollowedSet(ctx, viewerID, catIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, domain.PostView{
			Post:           p,
			User:           userRefs[p.UserID],
			Cat:            catRefs[p.CatID],
			LikeCount:      likeCounts[p.ID],
			CommentCount:   commentCounts[p.ID],
			Liked:          liked[p.ID],
			IsFollowingCat: followed[p.CatID],
		})
	}
	return views, nil
}
