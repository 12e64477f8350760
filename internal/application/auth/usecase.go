package auth

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
	"github.com/novasalud/clinic-api/pkg/jwt"
)

// BcryptCost costo usado para todas las contraseñas nuevas o migradas.
const BcryptCost = 10

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y verificación de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log.With().Str("component", "auth").Logger()}
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta responden igual.
// Si la contraseña guardada es un MD5 heredado y coincide, se reemplaza por bcrypt.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if user.HasLegacyHash() {
		if !matchesMD5(user.PasswordHash, in.Password) {
			return nil, domain.ErrInvalidCredentials
		}
		uc.upgradeHash(ctx, user, in.Password)
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: user.ID, Username: user.Username, Role: user.Role},
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.Infrastructure("generate token", err)
	}
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// upgradeHash migra la contraseña a bcrypt. Un fallo solo se registra: el login sigue.
func (uc *AuthUseCase) upgradeHash(ctx context.Context, user *entity.User, password string) {
	hash, err := HashPassword(password)
	if err == nil {
		err = uc.userRepo.UpdatePassword(ctx, user.ID, hash)
	}
	if err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("no se pudo migrar la contraseña a bcrypt")
		return
	}
	user.PasswordHash = hash
	uc.log.Info().Int64("user_id", user.ID).Msg("contraseña migrada de MD5 a bcrypt")
}

// Verify valida un token y devuelve la identidad que contiene.
func (uc *AuthUseCase) Verify(token string) (*dto.VerifyResponse, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.VerifyResponse{ID: id.UserID, Username: id.Username, Role: id.Role}, nil
}

func matchesMD5(stored, password string) bool {
	sum := md5.Sum([]byte(password))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(computed)) == 1
}

// ToUserResponse convierte la entidad en DTO (sin hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
