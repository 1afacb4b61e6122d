package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/pkg/jwt"
)

// RoleAdmin rol del operador de la oficina.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Operator credenciales del operador (hash bcrypt) tomadas de la configuración.
type Operator struct {
	Email        string
	PasswordHash string
}

// AuthUseCase login del operador de la oficina.
type AuthUseCase struct {
	operator Operator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator Operator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el operador configurado y emite un JWT.
// Cualquier falla de credenciales devuelve domain.ErrUnauthorized sin distinguir la causa.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.Email == "" || uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if !strings.EqualFold(strings.TrimSpace(in.Email), uc.operator.Email) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Email, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Email:     uc.operator.Email,
		Role:      RoleAdmin,
	}, nil
}
