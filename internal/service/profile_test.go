package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yuna/nekotalk/internal/domain"
	"github.com/yuna/nekotalk/internal/logger"
	"github.com/yuna/nekotalk/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type socialFixture struct {
	userService *UserService
	catService  *CatService
	postService *PostService
	catRepo     *repository.CatRepository
	postRepo    *repository.PostRepository
	owner       *domain.User
	follower    *domain.User
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	catRepo := repository.NewCatRepository(db)
	postRepo := repository.NewPostRepository(db)
	log := logger.NewDefault()

	f := &socialFixture{
		userService: NewUserService(userRepo, sessionRepo, catRepo, postRepo, log, time.Hour),
		catService:  NewCatService(catRepo, userRepo, log),
		postService: NewPostService(postRepo, catRepo, userRepo, log),
		catRepo:     catRepo,
		postRepo:    postRepo,
	}

	f.owner = seedUser(t, userRepo, "ゆき", "yuki@example.com")
	f.follower = seedUser(t, userRepo, "はると", "haruto@example.com")
	return f
}

func seedUser(t *testing.T, repo *repository.UserRepository, name, email string) *domain.User {
	t.Helper()
	now := time.Now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (f *socialFixture) seedCat(t *testing.T, ownerID, name string) *domain.Cat {
	t.Helper()
	now := time.Now()
	cat := &domain.Cat{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      name,
		Breed:     "雑種",
		Age:       2,
		Gender:    "メス",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.catRepo.Create(context.Background(), cat); err != nil {
		t.Fatalf("failed to seed cat: %v", err)
	}
	return cat
}

func (f *socialFixture) seedFollow(t *testing.T, followerID, catID string, at time.Time) {
	t.Helper()
	err := f.catRepo.Follow(context.Background(), &domain.Follow{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		CatID:      catID,
		CreatedAt:  at,
	})
	if err != nil {
		t.Fatalf("failed to seed follow: %v", err)
	}
}

func (f *socialFixture) seedPost(t *testing.T, userID, catID, content string, at time.Time) *domain.Post {
	t.Helper()
	post := &domain.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		CatID:     catID,
		Content:   content,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := f.postRepo.Create(context.Background(), post); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func TestUserService_Profile(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()
	now := time.Now()

	tama := f.seedCat(t, f.owner.ID, "たま")
	mike := f.seedCat(t, f.owner.ID, "ミケ")
	f.seedPost(t, f.owner.ID, tama.ID, "ひなたぼっこ", now.Add(-2*time.Hour))
	f.seedPost(t, f.owner.ID, mike.ID, "おやつの時間", now.Add(-time.Hour))
	f.seedFollow(t, f.follower.ID, tama.ID, now)

	// The owner also follows someone else's cat
	other := f.seedCat(t, f.follower.ID, "クロ")
	f.seedFollow(t, f.owner.ID, other.ID, now)

	profile, err := f.userService.Profile(ctx, f.owner.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if profile.Name != "ゆき" {
		t.Errorf("expected name ゆき, got %s", profile.Name)
	}
	if profile.PostCount != 2 {
		t.Errorf("expected 2 posts, got %d", profile.PostCount)
	}
	if profile.FollowingCount != 1 {
		t.Errorf("expected following count 1, got %d", profile.FollowingCount)
	}
	if len(profile.Cats) != 2 {
		t.Fatalf("expected 2 cats, got %d", len(profile.Cats))
	}
	for _, c := range profile.Cats {
		want := int64(0)
		if c.ID == tama.ID {
			want = 1
		}
		if c.FollowerCount != want {
			t.Errorf("cat %s: expected %d followers, got %d", c.Name, want, c.FollowerCount)
		}
	}
}

func TestUserService_ProfileUnknownUser(t *testing.T) {
	f := newSocialFixture(t)

	_, err := f.userService.Profile(context.Background(), "missing")
	if err != gorm.ErrRecordNotFound {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCatService_Following(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()
	now := time.Now()

	tama := f.seedCat(t, f.owner.ID, "たま")
	mike := f.seedCat(t, f.owner.ID, "ミケ")
	f.seedFollow(t, f.follower.ID, tama.ID, now.Add(-time.Hour))
	f.seedFollow(t, f.follower.ID, mike.ID, now)

	cats, err := f.catService.Following(ctx, f.follower.ID)
	if err != nil {
		t.Fatalf("Following returned error: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 followed cats, got %d", len(cats))
	}
	if cats[0].ID != mike.ID {
		t.Errorf("expected newest follow first, got cat %s", cats[0].Name)
	}
	for _, c := range cats {
		if c.User.ID != f.owner.ID || c.User.Name != "ゆき" {
			t.Errorf("cat %s: expected owner ref ゆき, got %+v", c.Name, c.User)
		}
		if c.FollowerCount != 1 {
			t.Errorf("cat %s: expected 1 follower, got %d", c.Name, c.FollowerCount)
		}
	}
}

func TestCatService_FollowingNone(t *testing.T) {
	f := newSocialFixture(t)

	cats, err := f.catService.Following(context.Background(), f.follower.ID)
	if err != nil {
		t.Fatalf("Following returned error: %v", err)
	}
	if len(cats) != 0 {
		t.Errorf("expected no followed cats, got %d", len(cats))
	}
}

func TestCatService_Followers(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()

	tama := f.seedCat(t, f.owner.ID, "たま")
	f.seedFollow(t, f.follower.ID, tama.ID, time.Now())

	users, err := f.catService.Followers(ctx, tama.ID)
	if err != nil {
		t.Fatalf("Followers returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 follower, got %d", len(users))
	}
	if users[0].ID != f.follower.ID || users[0].Name != "はると" {
		t.Errorf("unexpected follower ref: %+v", users[0])
	}
}

func TestCatService_FollowersUnknownCat(t *testing.T) {
	f := newSocialFixture(t)

	users, err := f.catService.Followers(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Followers returned error: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty list for unknown cat, got %d", len(users))
	}
}

func TestPostService_GetByUser(t *testing.T) {
	f := newSocialFixture(t)
	ctx := context.Background()
	now := time.Now()

	tama := f.seedCat(t, f.owner.ID, "たま")
	other := f.seedCat(t, f.follower.ID, "クロ")
	first := f.seedPost(t, f.owner.ID, tama.ID, "ひなたぼっこ", now.Add(-time.Hour))
	second := f.seedPost(t, f.owner.ID, tama.ID, "おやつの時間", now)
	f.seedPost(t, f.follower.ID, other.ID, "よその投稿", now)

	views, err := f.postService.GetByUser(ctx, "", f.owner.ID, time.Time{}, 20)
	if err != nil {
		t.Fatalf("GetByUser returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(views))
	}
	if views[0].ID != second.ID || views[1].ID != first.ID {
		t.Error("expected the user's posts newest first")
	}
	if views[0].Cat.Name != "たま" {
		t.Errorf("expected cat ref たま, got %s", views[0].Cat.Name)
	}
}
