package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/joyeria-pos/internal/application/auth"
	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de registro y login.
//
// El registro tiene una regla de arranque: con la tabla de usuarios vacía, el
// primer registro se acepta sin token y siempre queda como admin. A partir de
// ahí solo un admin puede registrar usuarios.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}
func (f *fakeUserRepo) Count() (int, error)                        { return len(f.users), nil }
func (f *fakeUserRepo) FindByID(id string) (*entity.User, error)   { return f.GetByID(id) }
func (f *fakeUserRepo) FindByEmail(e string) (*entity.User, error) { return f.GetByEmail(e) }

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "joyeria-pos-test",
	})
}

// ── registro ─────────────────────────────────────────────────────────────────

func TestRegisterUser_PrimerUsuarioSiempreAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	// Sin token (actorRole vacío) y pidiendo vendedor: el bootstrap manda.
	user, err := uc.RegisterUser("", dto.RegisterRequest{
		Email:    "duena@joyeria.co",
		Password: "clave-segura-1",
		Role:     entity.RoleVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, entity.UserStatusActive, user.Status)
}

func TestRegisterUser_SegundoRegistroSinAdmin_Forbidden(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser("", dto.RegisterRequest{Email: "otro@joyeria.co", Password: "clave-segura-2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(entity.RoleVendedor, dto.RegisterRequest{Email: "otro@joyeria.co", Password: "clave-segura-2"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser_AdminRegistraConRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)

	user, err := uc.RegisterUser(entity.RoleAdmin, dto.RegisterRequest{
		Email:    "mostrador@joyeria.co",
		Password: "clave-segura-2",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role, "sin rol explícito queda vendedor")
	assert.Equal(t, "mostrador@joyeria.co", user.Name, "sin nombre usa el email")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(entity.RoleAdmin, dto.RegisterRequest{Email: "Duena@Joyeria.CO", Password: "clave-segura-2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "la búsqueda de email ignora mayúsculas")
}

// ── login ────────────────────────────────────────────────────────────────────

func TestLogin_TokenConRolDelUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	created, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, role, err := jwt.Parse("secreto-de-test", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "duena@joyeria.co", Password: "no-es"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@joyeria.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo_Forbidden(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)

	created, err := uc.RegisterUser("", dto.RegisterRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	require.NoError(t, err)
	repo.users[created.ID].Status = entity.UserStatusInactive

	_, err = uc.Login(dto.LoginRequest{Email: "duena@joyeria.co", Password: "clave-segura-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── permisos ─────────────────────────────────────────────────────────────────

func TestPermissions_MatrizPorRol(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	perms := uc.Permissions()
	require.Contains(t, perms.Roles, entity.RoleAdmin)
	require.Contains(t, perms.Roles, entity.RoleBodeguero)
	require.Contains(t, perms.Roles, entity.RoleVendedor)

	assert.Contains(t, perms.Roles[entity.RoleAdmin], "users.manage")
	assert.Contains(t, perms.Roles[entity.RoleBodeguero], "inventory.move")
	assert.NotContains(t, perms.Roles[entity.RoleBodeguero], "invoices.void")
	assert.Contains(t, perms.Roles[entity.RoleVendedor], "cart.use")
	assert.NotContains(t, perms.Roles[entity.RoleVendedor], "storage.write")
}
