package handlers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tahmid11/socialbook/backend/internal/auth"
	"github.com/tahmid11/socialbook/backend/internal/models"
	"github.com/tahmid11/socialbook/backend/internal/repositories"
	"github.com/tahmid11/socialbook/backend/validators"
)

// testEnv wires an echo instance, an in-memory database and all handlers the
// way the router does in production.
type testEnv struct {
	e      *echo.Echo
	db     *gorm.DB
	tokens *auth.TokenManager

	userRepo   *repositories.PostgresUserRepository
	followRepo *repositories.PostgresFollowRepository
	postRepo   *repositories.PostgresPostRepository
	likeRepo   *repositories.PostgresLikeRepository
	notifRepo  repositories.NotificationRepository

	authHandler    *AuthHandler
	userHandler    *UserHandler
	followHandler  *FollowHandler
	postHandler    *PostHandler
	feedHandler    *FeedHandler
	likeHandler    *LikeHandler
	commentHandler *CommentHandler
	notifHandler   *NotificationHandler
	bookHandler    *BookHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache DSN keeps gorm's pooled connections on the same
	// in-memory database while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	env := &testEnv{
		e:          e,
		db:         db,
		userRepo:   repositories.NewPostgresUserRepository(db),
		followRepo: repositories.NewPostgresFollowRepository(db),
		postRepo:   repositories.NewPostgresPostRepository(db),
		likeRepo:   repositories.NewPostgresLikeRepository(db),
		notifRepo:  repositories.NewPostgresNotificationRepository(db),
	}

	commentRepo := repositories.NewPostgresCommentRepository(db)
	bookRepo := repositories.NewPostgresBookRepository(db)
	authorRepo := repositories.NewPostgresAuthorRepository(db)

	tokens := auth.NewTokenManager("test-secret", time.Hour, auth.NewBlacklist(nil))
	env.tokens = tokens

	env.authHandler = NewAuthHandler(env.userRepo, tokens)
	env.userHandler = NewUserHandler(env.userRepo, env.followRepo)
	env.followHandler = NewFollowHandler(env.followRepo, env.userRepo, env.notifRepo)
	env.postHandler = NewPostHandler(env.postRepo, env.userRepo, env.likeRepo)
	env.feedHandler = NewFeedHandler(env.postRepo, env.userRepo, env.followRepo, env.likeRepo)
	env.likeHandler = NewLikeHandler(env.likeRepo, env.postRepo, env.userRepo, env.notifRepo)
	env.commentHandler = NewCommentHandler(commentRepo, env.postRepo, env.userRepo, env.notifRepo)
	env.notifHandler = NewNotificationHandler(env.notifRepo, env.userRepo)
	env.bookHandler = NewBookHandler(bookRepo, authorRepo)

	return env
}

// createUser inserts a user directly; the plaintext password is not needed
// for handler tests that bypass login.
func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	if err := env.userRepo.CreateUser(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (env *testEnv) createPost(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID: author.ID,
		Title:    title,
		Content:  "content of " + title,
	}
	if err := env.postRepo.CreatePost(post); err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return post
}

// request builds an echo context for a direct handler invocation. userID of 0
// leaves the request anonymous.
func (env *testEnv) request(method, target, body string, userID uint, username string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if userID != 0 {
		c.Set("user", &auth.Claims{UserID: userID, Username: username})
	}
	return c, rec
}

// httpStatus extracts the status code from a handler result: either the
// recorder's code on success or the echo.HTTPError code on failure.
func httpStatus(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected non-HTTP error: %v", err)
	}
	return he.Code
}

// errStatus asserts the handler failed with an echo.HTTPError and returns
// its status code.
func errStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected handler error, got none")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("unexpected non-HTTP error: %v", err)
	}
	return he.Code
}

// countNotifications counts stored notifications matching recipient and verb.
func (env *testEnv) countNotifications(t *testing.T, recipientID uint, verb string) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND verb = ?", recipientID, verb).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	return count
}
