package books

import "time"

// AuthorRef is the embedded author projection returned with each book.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book represents a catalog book joined with its author.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    AuthorRef `json:"author"`
	Price     float64   `json:"price"`
	Rating    int       `json:"rating"`
	Cover     string    `json:"cover"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilter narrows the book listing by price or rating range.
type ListFilter struct {
	MinPrice *float64
	MaxPrice *float64
	MinRate  *int
	MaxRate  *int
}
