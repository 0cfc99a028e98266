package repositories

import (
	"strings"

	"github.com/tahmid11/socialbook/backend/internal/models"
	"gorm.io/gorm"
)

// BookFilter carries the recognized list-query parameters for books. Absent
// (zero / nil) parameters are no-ops; all supplied filters combine as an AND
// conjunction with the search predicate AND-ed in as an OR-group.
type BookFilter struct {
	Title              string // case-insensitive substring
	AuthorName         string // case-insensitive substring on the joined author
	PublicationYear    *int   // exact
	PublicationYearMin *int   // inclusive
	PublicationYearMax *int   // inclusive
	Search             string // substring across title OR author name
	Ordering           string // title, publication_year or author_name; "-" prefix for descending
}

// BookRepository defines the interface for book data operations
type BookRepository interface {
	CreateBook(book *models.Book) error
	GetBookByID(id uint) (*models.Book, error)
	ListBooks(filter BookFilter) ([]models.Book, error)
	UpdateBook(book *models.Book) error
	DeleteBook(id uint) error
}

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	CreateAuthor(author *models.Author) error
	GetAuthorByID(id uint) (*models.Author, error)
	ListAuthors() ([]models.Author, error)
}

// PostgresBookRepository implements BookRepository for PostgreSQL
type PostgresBookRepository struct {
	db *gorm.DB
}

// NewPostgresBookRepository creates a new PostgresBookRepository
func NewPostgresBookRepository(db *gorm.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

func (r *PostgresBookRepository) CreateBook(book *models.Book) error {
	return translateError(r.db.Create(book).Error)
}

func (r *PostgresBookRepository) GetBookByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// ListBooks composes the filter into a single read query over books joined
// with authors.
func (r *PostgresBookRepository) ListBooks(filter BookFilter) ([]models.Book, error) {
	q := r.db.Model(&models.Book{}).
		Joins("JOIN authors ON authors.id = books.author_id")

	if filter.Title != "" {
		q = q.Where("LOWER(books.title) LIKE LOWER(?)", "%"+filter.Title+"%")
	}
	if filter.AuthorName != "" {
		q = q.Where("LOWER(authors.name) LIKE LOWER(?)", "%"+filter.AuthorName+"%")
	}
	if filter.PublicationYear != nil {
		q = q.Where("books.publication_year = ?", *filter.PublicationYear)
	}
	if filter.PublicationYearMin != nil {
		q = q.Where("books.publication_year >= ?", *filter.PublicationYearMin)
	}
	if filter.PublicationYearMax != nil {
		q = q.Where("books.publication_year <= ?", *filter.PublicationYearMax)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(books.title) LIKE LOWER(?) OR LOWER(authors.name) LIKE LOWER(?)", pattern, pattern)
	}

	var books []models.Book
	err := q.Order(bookOrderClause(filter.Ordering)).Find(&books).Error
	return books, err
}

func (r *PostgresBookRepository) UpdateBook(book *models.Book) error {
	return translateError(r.db.Save(book).Error)
}

func (r *PostgresBookRepository) DeleteBook(id uint) error {
	res := r.db.Delete(&models.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// bookOrderClause whitelists the orderable sort keys; anything unrecognized
// falls back to the default (-publication_year, title) order.
func bookOrderClause(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	var column string
	switch key {
	case "title":
		column = "books.title"
	case "publication_year":
		column = "books.publication_year"
	case "author_name":
		column = "authors.name"
	default:
		return "books.publication_year DESC, books.title ASC"
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// PostgresAuthorRepository implements AuthorRepository for PostgreSQL
type PostgresAuthorRepository struct {
	db *gorm.DB
}

// NewPostgresAuthorRepository creates a new PostgresAuthorRepository
func NewPostgresAuthorRepository(db *gorm.DB) *PostgresAuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

func (r *PostgresAuthorRepository) CreateAuthor(author *models.Author) error {
	return translateError(r.db.Create(author).Error)
}

// GetAuthorByID retrieves an author with their books preloaded.
func (r *PostgresAuthorRepository) GetAuthorByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.Preload("Books").First(&author, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &author, nil
}

func (r *PostgresAuthorRepository) ListAuthors() ([]models.Author, error) {
	var authors []models.Author
	err := r.db.Preload("Books").Order("name ASC").Find(&authors).Error
	return authors, err
}
