// Package authenticating emite e valida os tokens dos clientes da API.
package authenticating

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/sales-forecast-api/internal/config"
	"github.com/vfg2006/sales-forecast-api/internal/domain"
	"github.com/vfg2006/sales-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/sales-forecast-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 12 * time.Hour

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Authenticator interface {
	Login(clientID, secret string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type client struct {
	id         string
	roleID     int
	secretHash []byte
}

type Service struct {
	clients  map[string]client
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewService carrega os clientes no formato id:papel:hash_bcrypt
func NewService(cfg config.Auth) (*Service, error) {
	clients := make(map[string]client, len(cfg.Clients))

	for _, entry := range cfg.Clients {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		c, err := parseClient(entry)
		if err != nil {
			return nil, err
		}
		clients[c.id] = c
	}

	if len(clients) == 0 {
		log.L.Warn("Nenhum cliente de API configurado, login sempre falhará")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Service{
		clients:  clients,
		secret:   []byte(cfg.Secret),
		tokenTTL: ttl,
		now:      time.Now,
	}, nil
}

func parseClient(entry string) (client, error) {
	// o hash bcrypt não contém ':', então bastam três partes
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return client{}, fmt.Errorf("%w: esperado id:papel:hash", ErrInvalidClientEntry)
	}

	roleID, err := strconv.Atoi(parts[1])
	if err != nil || (roleID != domain.RoleAdmin && roleID != domain.RoleAnalyst) {
		return client{}, fmt.Errorf("%w: papel %q do cliente %s", ErrInvalidClientEntry, parts[1], parts[0])
	}

	return client{id: parts[0], roleID: roleID, secretHash: []byte(parts[2])}, nil
}

func (s *Service) Login(clientID, secret string) (string, error) {
	if clientID == "" || secret == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "client_id e client_secret são obrigatórios")
	}

	c, ok := s.clients[clientID]
	if !ok {
		return "", NewClientAuthError(ErrClientNotFound, apiErrors.ErrInvalidCredentials, clientID, "Cliente não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword(c.secretHash, []byte(secret)); err != nil {
		return "", NewClientAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, clientID, "Segredo incorreto")
	}

	token, err := s.generateJWT(c)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) generateJWT(c client) (string, error) {
	now := s.now()
	claims := domain.Claims{
		ClientID: c.id,
		RoleID:   c.roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
