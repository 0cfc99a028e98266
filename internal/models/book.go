package models

// Author represents a book author in the library domain.
type Author struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;index"`

	Books []Book `json:"books,omitempty" gorm:"foreignKey:AuthorID"`
}

// Book represents a published book. Default listing order is newest
// publication year first, then title.
type Book struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Title           string `json:"title" gorm:"size:200;index"`
	PublicationYear int    `json:"publication_year" gorm:"index"`
	AuthorID        uint   `json:"author_id" gorm:"index"`

	Author Author `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// CreateBookRequest defines the request body for creating or replacing a book.
// The publication year range rule is enforced separately in the validators
// package so the error message can name the offending bound.
type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	AuthorID        uint   `json:"author_id" validate:"required"`
}

// CreateAuthorRequest defines the request body for creating an author
type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
