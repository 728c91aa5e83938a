package domain

import "github.com/golang-jwt/jwt/v5"

// Claims do token emitido para clientes da API
type Claims struct {
	ClientID string `json:"client_id"`
	RoleID   int    `json:"role_id"`
	jwt.RegisteredClaims
}

// Papéis dos clientes da API
const (
	RoleAdmin   = 1
	RoleAnalyst = 2
)
