package usecase

import (
	authdomain "edupath-backend/internal/auth/domain"
	authdto "edupath-backend/internal/auth/dto"
)

// AuthUsecase handles account lifecycle and JWT issuance.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)
}
