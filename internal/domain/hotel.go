package domain

// Hotel is a catalog entry. Field names on the wire are snake_case, shared by
// the document store and the bundled catalog file.
type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"` // nightly rate
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Category    string   `json:"category"`
	IsPopular   bool     `json:"is_popular"`
	IsFeatured  bool     `json:"is_featured"`
}

// Offer is a promotional card derived from a featured hotel.
type Offer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Discount    int    `json:"discount"` // percent
	Hotel       Hotel  `json:"hotel"`
}
