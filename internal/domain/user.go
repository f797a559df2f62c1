package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as informações do usuário emitidas pelo provedor de identidade
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}
