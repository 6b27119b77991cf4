package auth

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords, so
// responses can't be used to probe for existing accounts.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserRepository interface {
	Authenticate(username, password string) (User, error)
	EnsureAdmin(username, password, email string) error
}

type userRepository struct {
	Connection *sql.DB
}

func NewRepository(connection *sql.DB) UserRepository {
	return &userRepository{connection}
}

// Authenticate verifies the supplied credentials against the users table,
// comparing the password with its stored bcrypt hash.
func (ur *userRepository) Authenticate(username, password string) (User, error) {

	var user User
	var hash string
	err := ur.Connection.QueryRow(`
		SELECT id, username, password, COALESCE(email, ''), COALESCE(role, 'admin'), created_at
		FROM users WHERE username = ?`, username).Scan(
		&user.Id, &user.Username, &hash, &user.Email, &user.Role, &user.Created)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("fetching user: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// EnsureAdmin seeds the configured admin identity, once, when the users table is
// empty. The table remains the single source of truth for later logins; operators
// rotate credentials by editing it, not by changing the seed configuration.
func (ur *userRepository) EnsureAdmin(username, password, email string) error {

	var count int
	if err := ur.Connection.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	if _, err = ur.Connection.Exec(
		"INSERT INTO users (username, password, email, role) VALUES (?, ?, ?, 'admin')",
		username, string(hash), email); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	return nil
}
