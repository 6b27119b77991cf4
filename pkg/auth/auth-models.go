package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User mirrors a row of the users table; the password hash never leaves the repository.
type User struct {
	Id       int64
	Username string
	Email    string
	Role     string
	Created  time.Time
}

// Credentials carry a login form submission.
type Credentials struct {
	Username string
	Password string
}

func (data Credentials) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&data.Password, validation.Required, validation.Length(1, 100)),
	)
}
