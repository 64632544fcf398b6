package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y permisos.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// El primer usuario del sistema se crea como admin sin requerir token
// (bootstrap); después solo un admin puede registrar usuarios. Devuelve
// ErrEmailAlreadyExists si el email ya está tomado.
func (uc *AuthUseCase) RegisterUser(actorRole string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	total, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if total == 0 {
		role = entity.RoleAdmin
	} else if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Permissions devuelve la matriz rol -> acciones que el frontend usa para
// mostrar u ocultar pantallas. Es la misma matriz que imponen los grupos de
// rutas con RequireRole.
func (uc *AuthUseCase) Permissions() *dto.PermissionsResponse {
	return &dto.PermissionsResponse{
		Roles: map[string][]string{
			entity.RoleAdmin: {
				"catalog.read", "catalog.write",
				"storage.read", "storage.write",
				"inventory.move", "inventory.history",
				"cart.use", "customers.manage",
				"invoices.create", "invoices.read", "invoices.void",
				"reports.view", "users.manage",
			},
			entity.RoleBodeguero: {
				"catalog.read",
				"storage.read", "storage.write",
				"inventory.move", "inventory.history",
				"reports.view",
			},
			entity.RoleVendedor: {
				"catalog.read", "storage.read",
				"cart.use", "customers.manage",
				"invoices.create", "invoices.read",
			},
		},
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
