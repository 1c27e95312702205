package authors

type CreateAuthorRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=200"`
	Age         int    `json:"age" validate:"required,gte=0"`
	Nationality string `json:"nationality" validate:"required,min=3,max=50"`
	Image       string `json:"image,omitempty"`
}

type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=0"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,min=3,max=50"`
	Image       *string `json:"image,omitempty"`
}
