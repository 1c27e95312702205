package authors

import "time"

// DefaultImage is the avatar applied when none is supplied.
const DefaultImage = "https://www.pngitem.com/pimgs/m/30-307416_profile-icon-png-image-free-download-searchpng-employee.png"

// Author represents a catalog author.
type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Nationality string    `json:"nationality"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
