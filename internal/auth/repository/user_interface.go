package repository

import authdomain "edupath-backend/internal/auth/domain"

// UserRepository defines storage operations for accounts and their refresh
// tokens.
type UserRepository interface {
	Create(user *authdomain.User) error
	// FindByEmail returns nil, nil when no account exists.
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}
