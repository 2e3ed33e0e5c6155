package entity

type Theme struct {
	Base
	Name        string   `db:"name"`
	Slug        string   `db:"slug"`
	Occasion    string   `db:"occasion"`
	Description *string  `db:"description"`
	BasePrice   float64  `db:"base_price"` // quoted for 25 guests
	Images      []string `db:"images"`
	IsActive    bool     `db:"is_active"`
}
