package repositories

import (
	"testing"

	"gorm.io/gorm"

	"github.com/tahmid11/socialbook/backend/internal/models"
)

func seedBooks(t *testing.T, db *gorm.DB) {
	t.Helper()
	orwell := &models.Author{Name: "George Orwell"}
	austen := &models.Author{Name: "Jane Austen"}
	for _, a := range []*models.Author{orwell, austen} {
		if err := db.Create(a).Error; err != nil {
			t.Fatalf("seed author %s: %v", a.Name, err)
		}
	}
	books := []models.Book{
		{Title: "1984", PublicationYear: 1949, AuthorID: orwell.ID},
		{Title: "Animal Farm", PublicationYear: 1945, AuthorID: orwell.ID},
		{Title: "Pride and Prejudice", PublicationYear: 1813, AuthorID: austen.ID},
	}
	for i := range books {
		if err := db.Create(&books[i]).Error; err != nil {
			t.Fatalf("seed book %s: %v", books[i].Title, err)
		}
	}
}

func titlesOf(books []models.Book) []string {
	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}
	return titles
}

func assertTitles(t *testing.T, got []models.Book, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d books, got %v", len(want), titlesOf(got))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i].Title)
		}
	}
}

func TestListBooksFilters(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db)
	repo := NewPostgresBookRepository(db)

	books, err := repo.ListBooks(BookFilter{AuthorName: "orwell"})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	assertTitles(t, books, "1984", "Animal Farm")

	year := 1949
	books, err = repo.ListBooks(BookFilter{PublicationYear: &year})
	if err != nil {
		t.Fatalf("list by year: %v", err)
	}
	assertTitles(t, books, "1984")

	min, max := 1800, 1946
	books, err = repo.ListBooks(BookFilter{PublicationYearMin: &min, PublicationYearMax: &max})
	if err != nil {
		t.Fatalf("list by year range: %v", err)
	}
	assertTitles(t, books, "Animal Farm", "Pride and Prejudice")

	// Filters compose as a conjunction.
	books, err = repo.ListBooks(BookFilter{AuthorName: "orwell", PublicationYearMin: &min, PublicationYearMax: &max})
	if err != nil {
		t.Fatalf("list combined: %v", err)
	}
	assertTitles(t, books, "Animal Farm")
}

func TestListBooksSearchSpansTitleAndAuthor(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db)
	repo := NewPostgresBookRepository(db)

	books, err := repo.ListBooks(BookFilter{Search: "pride"})
	if err != nil {
		t.Fatalf("search title: %v", err)
	}
	assertTitles(t, books, "Pride and Prejudice")

	books, err = repo.ListBooks(BookFilter{Search: "orwell"})
	if err != nil {
		t.Fatalf("search author: %v", err)
	}
	assertTitles(t, books, "1984", "Animal Farm")
}

func TestListBooksOrdering(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db)
	repo := NewPostgresBookRepository(db)

	cases := []struct {
		ordering string
		want     []string
	}{
		// Default: newest publication year first, title breaks ties.
		{"", []string{"1984", "Animal Farm", "Pride and Prejudice"}},
		{"title", []string{"1984", "Animal Farm", "Pride and Prejudice"}},
		{"-title", []string{"Pride and Prejudice", "Animal Farm", "1984"}},
		{"publication_year", []string{"Pride and Prejudice", "Animal Farm", "1984"}},
		{"-publication_year", []string{"1984", "Animal Farm", "Pride and Prejudice"}},
		// Unrecognized keys fall back to the default order.
		{"id; DROP TABLE books", []string{"1984", "Animal Farm", "Pride and Prejudice"}},
	}
	for _, tc := range cases {
		books, err := repo.ListBooks(BookFilter{Ordering: tc.ordering})
		if err != nil {
			t.Fatalf("ordering %q: %v", tc.ordering, err)
		}
		got := titlesOf(books)
		if len(got) != len(tc.want) {
			t.Errorf("ordering %q: expected %d books, got %v", tc.ordering, len(tc.want), got)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("ordering %q position %d: expected %q, got %q", tc.ordering, i, tc.want[i], got[i])
			}
		}
	}
}

func TestDeleteBookMissing(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db)
	repo := NewPostgresBookRepository(db)

	if err := repo.DeleteBook(999); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing book, got %v", err)
	}
}

func TestAuthorPreloadsBooks(t *testing.T) {
	db := newTestDB(t)
	seedBooks(t, db)
	repo := NewPostgresAuthorRepository(db)

	authors, err := repo.ListAuthors()
	if err != nil {
		t.Fatalf("list authors: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(authors))
	}
	// Sorted by name: Orwell after Austen.
	if authors[0].Name != "George Orwell" || len(authors[0].Books) != 2 {
		t.Errorf("expected Orwell first with 2 books, got %s with %d", authors[0].Name, len(authors[0].Books))
	}
	if authors[1].Name != "Jane Austen" || len(authors[1].Books) != 1 {
		t.Errorf("expected Austen with 1 book, got %s with %d", authors[1].Name, len(authors[1].Books))
	}
}
