package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is a customer record found or created at booking time; there is no
// password, customers are matched by email or phone.
type User struct {
	BaseNoDelete
	Name     string   `db:"name"`
	Email    *string  `db:"email"`
	Phone    *string  `db:"phone"`
	Role     UserRole `db:"role"`
	IsActive bool     `db:"is_active"`
}
