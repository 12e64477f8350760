package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
	"github.com/novasalud/clinic-api/pkg/jwt"
)

type fakeUsers struct {
	repository.UserRepository
	byName    map[string]*entity.User
	updateErr error
	updated   map[int64]string
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return f.byName[username], nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updated == nil {
		f.updated = map[int64]string{}
	}
	f.updated[id] = hash
	return nil
}

var testJWT = JWTConfig{Secret: "secreto", ExpMinutes: 60, Issuer: "test"}

func newAuth(users ...*entity.User) (*AuthUseCase, *fakeUsers) {
	f := &fakeUsers{byName: map[string]*entity.User{}}
	for _, u := range users {
		f.byName[u.Username] = u
	}
	return NewAuthUseCase(f, testJWT, zerolog.Nop()), f
}

func TestLogin_Bcrypt(t *testing.T) {
	hash, err := HashPassword("clave123")
	require.NoError(t, err)
	uc, _ := newAuth(&entity.User{ID: 3, Username: "admin", PasswordHash: hash, Role: entity.RoleAdmin})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.User.ID)

	id, err := jwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Role)
}

func TestLogin_CredencialesInvalidasMismoError(t *testing.T) {
	hash, _ := HashPassword("clave123")
	uc, _ := newAuth(&entity.User{ID: 3, Username: "admin", PasswordHash: hash, Role: entity.RoleAdmin})

	_, errPass := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra"})
	_, errUser := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave123"})

	assert.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestLogin_MigraHashMD5(t *testing.T) {
	sum := md5.Sum([]byte("vieja"))
	uc, repo := newAuth(&entity.User{ID: 8, Username: "maria", PasswordHash: hex.EncodeToString(sum[:]), Role: entity.RoleVendedor})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "vieja"})
	require.NoError(t, err)

	newHash, ok := repo.updated[8]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("vieja")))
}

func TestLogin_MD5IncorrectoNoMigra(t *testing.T) {
	sum := md5.Sum([]byte("vieja"))
	uc, repo := newAuth(&entity.User{ID: 8, Username: "maria", PasswordHash: hex.EncodeToString(sum[:])})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, repo.updated)
}

func TestLogin_FalloAlMigrarNoBloquea(t *testing.T) {
	sum := md5.Sum([]byte("vieja"))
	uc, repo := newAuth(&entity.User{ID: 8, Username: "maria", PasswordHash: hex.EncodeToString(sum[:])})
	repo.updateErr = errors.New("db caída")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "vieja"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_Validacion(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerify(t *testing.T) {
	uc, _ := newAuth()
	token, err := jwt.Generate(testJWT.Secret, jwt.Identity{UserID: 5, Username: "ana", Role: "vendedor"}, "test", 10)
	require.NoError(t, err)

	out, err := uc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)

	_, err = uc.Verify("basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
