package entity

type Addon struct {
	Base
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       float64 `db:"price"`
	IsActive    bool    `db:"is_active"`
}
