package books

type CreateBookRequest struct {
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	AuthorID int64   `json:"author" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Rating   int     `json:"rating" validate:"required,gte=1,lte=5"`
	Cover    string  `json:"cover" validate:"required,oneof=soft hard"`
}

type UpdateBookRequest struct {
	Title    *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	AuthorID *int64   `json:"author,omitempty" validate:"omitempty,gt=0"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Rating   *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Cover    *string  `json:"cover,omitempty" validate:"omitempty,oneof=soft hard"`
}
