package models

// User roles. Staff and admin sessions unlock the kitchen board and the
// back-office; customers only see their own orders.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// User represents an authenticated account (customer, staff or admin).
type User struct {
	BaseModel
	Name         string  `json:"name"`
	Phone        string  `gorm:"uniqueIndex" json:"phone"`
	PasswordHash string  `json:"-"`
	Role         string  `gorm:"default:customer" json:"role"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	Orders       []Order `json:"orders,omitempty"`
}

// IsStaff reports whether the user may operate the kitchen board.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
