package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tahmid11/socialbook/backend/internal/models"
	"github.com/tahmid11/socialbook/backend/internal/repositories"
	"github.com/tahmid11/socialbook/backend/validators"
)

// Library actions checked by authorizeLibrary.
const (
	actionRead  = "read"
	actionWrite = "write"
)

// authorizeLibrary is the access policy for the library domain: reads are
// open to anyone, writes require an authenticated principal. Anonymous
// writes get a uniform forbidden response.
func authorizeLibrary(principal uint, action string) error {
	if action == actionRead {
		return nil
	}
	if principal == 0 {
		return echo.NewHTTPError(http.StatusForbidden, "Authentication required to modify library records")
	}
	return nil
}

// BookHandler handles HTTP requests for the library domain
type BookHandler struct {
	bookRepository   repositories.BookRepository
	authorRepository repositories.AuthorRepository
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookRepo repositories.BookRepository, authorRepo repositories.AuthorRepository) *BookHandler {
	return &BookHandler{
		bookRepository:   bookRepo,
		authorRepository: authorRepo,
	}
}

// RegisterBookRoutes registers book and author routes
func (h *BookHandler) RegisterBookRoutes(g *echo.Group) {
	g.GET("/books", h.ListBooks)
	g.GET("/books/:id", h.GetBook)
	g.POST("/books", h.CreateBook)
	g.PUT("/books/:id", h.UpdateBook)
	g.DELETE("/books/:id", h.DeleteBook)

	g.GET("/authors", h.ListAuthors)
	g.GET("/authors/:id", h.GetAuthor)
	g.POST("/authors", h.CreateAuthor)
}

// parseBookFilter reads the recognized query parameters. Absent parameters
// stay zero-valued and are ignored by the repository.
func parseBookFilter(c echo.Context) repositories.BookFilter {
	filter := repositories.BookFilter{
		Title:      c.QueryParam("title"),
		AuthorName: c.QueryParam("author_name"),
		Search:     c.QueryParam("search"),
		Ordering:   c.QueryParam("ordering"),
	}
	if v, err := strconv.Atoi(c.QueryParam("publication_year")); err == nil {
		filter.PublicationYear = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("publication_year_min")); err == nil {
		filter.PublicationYearMin = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("publication_year_max")); err == nil {
		filter.PublicationYearMax = &v
	}
	return filter
}

// ListBooks lists books with filter/search/order composition
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.bookRepository.ListBooks(parseBookFilter(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"books": books,
		"count": len(books),
	})
}

// GetBook retrieves a single book by ID
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, book)
}

// CreateBook creates a new book; authenticated callers only
func (h *BookHandler) CreateBook(c echo.Context) error {
	if err := authorizeLibrary(getUserIDFromContext(c), actionWrite); err != nil {
		return err
	}

	var req models.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validators.ValidatePublicationYear(req.PublicationYear); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authorRepository.GetAuthorByID(req.AuthorID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown author")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book := &models.Book{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
	}

	if err := h.bookRepository.CreateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, book)
}

// UpdateBook replaces a book's fields; authenticated callers only
func (h *BookHandler) UpdateBook(c echo.Context) error {
	if err := authorizeLibrary(getUserIDFromContext(c), actionWrite); err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	var req models.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := validators.ValidatePublicationYear(req.PublicationYear); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.bookRepository.GetBookByID(uint(id))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.authorRepository.GetAuthorByID(req.AuthorID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown author")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	book.Title = req.Title
	book.PublicationYear = req.PublicationYear
	book.AuthorID = req.AuthorID

	if err := h.bookRepository.UpdateBook(book); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, book)
}

// DeleteBook deletes a book; authenticated callers only
func (h *BookHandler) DeleteBook(c echo.Context) error {
	if err := authorizeLibrary(getUserIDFromContext(c), actionWrite); err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book ID")
	}

	if err := h.bookRepository.DeleteBook(uint(id)); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ListAuthors lists all authors with their books nested
func (h *BookHandler) ListAuthors(c echo.Context) error {
	authors, err := h.authorRepository.ListAuthors()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"authors": authors,
		"count":   len(authors),
	})
}

// GetAuthor retrieves an author with their books nested
func (h *BookHandler) GetAuthor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
	}

	author, err := h.authorRepository.GetAuthorByID(uint(id))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Author not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, author)
}

// CreateAuthor creates a new author; authenticated callers only
func (h *BookHandler) CreateAuthor(c echo.Context) error {
	if err := authorizeLibrary(getUserIDFromContext(c), actionWrite); err != nil {
		return err
	}

	var req models.CreateAuthorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	author := &models.Author{Name: req.Name}
	if err := h.authorRepository.CreateAuthor(author); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, author)
}
