package repositories

import (
	"strings"

	"github.com/tahmid11/socialbook/backend/internal/models"
	"gorm.io/gorm"
)

// PostFilter carries the recognized list-query parameters for posts.
// Zero values are no-ops.
type PostFilter struct {
	AuthorID uint
	Search   string // case-insensitive substring across title and content
	Ordering string // created_at or updated_at, "-" prefix for descending
	Page     int
	Limit    int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	ListPosts(filter PostFilter) ([]models.Post, int64, error)
	GetFeedPosts(authorIDs []uint, page, limit int) ([]models.Post, int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return translateError(r.db.Create(post).Error)
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// ListPosts applies the filter as an AND conjunction and returns one page plus
// the total matching count.
func (r *PostgresPostRepository) ListPosts(filter PostFilter) ([]models.Post, int64, error) {
	q := r.db.Model(&models.Post{})

	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(postOrderClause(filter.Ordering))

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var posts []models.Post
	err := q.Offset((page - 1) * limit).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// GetFeedPosts returns posts authored by the given accounts, newest first with
// id ties kept in insertion order. An empty author set yields an empty page.
func (r *PostgresPostRepository) GetFeedPosts(authorIDs []uint, page, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	var total int64
	if err := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}

	var posts []models.Post
	err := r.db.Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return translateError(r.db.Save(post).Error)
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return translateError(r.db.Delete(&models.Post{}, id).Error)
}

// postOrderClause whitelists the orderable post columns; anything unrecognized
// falls back to the default newest-first order.
func postOrderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	switch key {
	case "created_at", "updated_at":
	default:
		return "created_at DESC"
	}
	if desc {
		return key + " DESC"
	}
	return key + " ASC"
}
