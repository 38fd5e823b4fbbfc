package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/application/auth"
	"github.com/lot-pos/lot-api/internal/application/dto"
	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
	pkgjwt "github.com/lot-pos/lot-api/pkg/jwt"
	"github.com/lot-pos/lot-api/pkg/logger"
)

const testSecret = "auth-service-test-secret"

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	if u := f.users[id]; u != nil {
		u.Role = role
	}
	return nil
}

func newService(repo *fakeUserRepo) *auth.Service {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return auth.NewService(repo, log, testSecret, "lot-pos-test", 60)
}

func signUpRequest() dto.SignUpRequest {
	return dto.SignUpRequest{
		Username: "ana",
		Email:    "Ana@Example.com",
		Password: "contraseña-segura",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SignUp
// ──────────────────────────────────────────────────────────────────────────────

func TestSignUp_AsignaEmployeePorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	out, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleEmployee, out.Role, "sin rol explícito se asigna Employee")
	assert.Equal(t, "ana@example.com", out.Email, "el email se normaliza a minúsculas")
	assert.NotZero(t, out.ID)
}

func TestSignUp_NoPersisteLaContrasenaEnPlano(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	out, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	stored := repo.users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestSignUp_RolExplicito(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	req := signUpRequest()
	req.Role = entity.RoleAdministrator
	out, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdministrator, out.Role)
}

func TestSignUp_RolDesconocido(t *testing.T) {
	svc := newService(newFakeUserRepo())

	req := signUpRequest()
	req.Role = "SuperUser"
	_, err := svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignUp_PasswordCorta(t *testing.T) {
	svc := newService(newFakeUserRepo())

	req := signUpRequest()
	req.Password = "corta"
	_, err := svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSignUp_UsernameDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	req := signUpRequest()
	req.Email = "otra@example.com"
	_, err = svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	req := signUpRequest()
	req.Username = "otra"
	_, err = svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// SignIn
// ──────────────────────────────────────────────────────────────────────────────

func TestSignIn_EmiteTokenConRol(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)

	req := signUpRequest()
	req.Role = entity.RoleAdministrator
	_, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	out, err := svc.SignIn(context.Background(), dto.SignInRequest{Username: "ana", Password: "contraseña-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleAdministrator, role)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	_, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), dto.SignInRequest{Username: "ana", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.SignIn(context.Background(), dto.SignInRequest{Username: "nadie", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente debe responder igual que contraseña incorrecta")
}

func TestGetUser_Inexistente(t *testing.T) {
	svc := newService(newFakeUserRepo())
	_, err := svc.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeRole
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeRole_ActualizaYPersiste(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	created, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	out, err := svc.ChangeRole(context.Background(), created.ID, entity.RoleAdministrator)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdministrator, out.Role)
	assert.Equal(t, entity.RoleAdministrator, repo.users[created.ID].Role)
}

func TestChangeRole_UsuarioInexistente(t *testing.T) {
	svc := newService(newFakeUserRepo())
	_, err := svc.ChangeRole(context.Background(), 99, entity.RoleAdministrator)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestChangeRole_RolInvalido(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newService(repo)
	created, err := svc.SignUp(context.Background(), signUpRequest())
	require.NoError(t, err)

	_, err = svc.ChangeRole(context.Background(), created.ID, "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.RoleEmployee, repo.users[created.ID].Role,
		"un rol inválido no debe mutar al usuario persistido")
}
