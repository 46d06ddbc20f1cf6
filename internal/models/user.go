package models

import "time"

// User is an authenticated shopper or admin.
type User struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Name       string    `json:"name" validate:"required,min=1,max=50"`
	Phone      string    `json:"phone"`
	Birthdate  string    `json:"birthdate,omitempty"`
	Gender     string    `json:"gender,omitempty"` // MALE, FEMALE
	EmailOptIn bool      `json:"emailOptIn"`
	SMSOptIn   bool      `json:"smsOptIn"`
	Role       string    `json:"role" gorm:"type:varchar(10);default:USER"` // USER, ADMIN
	ZipCode    string    `json:"zipCode,omitempty"`
	Address1   string    `json:"address1,omitempty"`
	Address2   string    `json:"address2,omitempty"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required,min=1,max=50"`
	Phone           string `json:"phone" validate:"required"`
	Birthdate       string `json:"birthdate,omitempty"`
	Gender          string `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE"`
	EmailOptIn      bool   `json:"emailOptIn"`
	SMSOptIn        bool   `json:"smsOptIn"`
	ZipCode         string `json:"zipCode,omitempty"`
	Address1        string `json:"address1,omitempty"`
	Address2        string `json:"address2,omitempty"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token and the logged-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
