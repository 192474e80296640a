package model

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// Account is owned by the identity side; orders only keep its ID.
type Account struct {
	DTO
	Email        string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	DisplayName  string `gorm:"size:100;not null" json:"displayName"`
	Phone        string `gorm:"size:20" json:"phone"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email,max=100"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Confirm     string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccountResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone"`
	Role        Role   `json:"role"`
}
