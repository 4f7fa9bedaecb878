package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/naresh-2026/warehouseProducts/internal/apperr"
	"github.com/naresh-2026/warehouseProducts/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any authentication failure. It
// deliberately does not distinguish an unknown user from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(username, email, password string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db       *sql.DB
	activity ActivityServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, activity ActivityServiceProvider) *UserService {
	return &UserService{db: db, activity: activity}
}

// CreateUser creates a new user, hashing their password.
func (s *UserService) CreateUser(username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, apperr.Validation("username, email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, apperr.Storage(err, "failed to hash password")
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, apperr.Storage(err, "could not create user")
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Conflict("username or email already taken")
		}
		return models.User{}, apperr.Storage(err, "could not create user")
	}

	if s.activity != nil {
		s.activity.Record("user.signup", "info", "User '"+username+"' signed up.", &user.Username)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// GetUserByUsername retrieves a single user, including the password hash.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.NotFound("user '%s' not found", username)
		}
		return models.User{}, apperr.Storage(err, "could not look up user")
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if apperr.IsStorage(err) {
			return models.User{}, err
		}
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// isUniqueViolation reports whether err is a sqlite unique constraint
// failure. The driver does not export typed errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
