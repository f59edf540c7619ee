package jwt

import (
	"github.com/go-chi/jwtauth/v5"
)

// Service verifies access tokens issued by the identity service. This service
// never mints tokens itself.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	jwtAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		jwtAuth: jwtauth.New("HS256", []byte(secretKey), nil),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.jwtAuth
}
