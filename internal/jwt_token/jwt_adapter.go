package jwttoken

import (
	"verifid/internal/platform/middleware"
	id "verifid/pkg/domain"
)

// JWTServiceAdapter bridges the token service to the middleware's
// validator interface, parsing the user ID at the trust boundary.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{UserID: userID}, nil
}
