package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/domain"
	"github.com/budoverein/dojokasse/internal/domain/entity"
	"github.com/budoverein/dojokasse/internal/domain/repository"
	"github.com/budoverein/dojokasse/pkg/jwt"
)

// JWTConfig: Parameter der Token-Erzeugung.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase: Registrierung und Login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	dojoRepo repository.DojoRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase baut den Auth-Use-Case.
func NewAuthUseCase(userRepo repository.UserRepository, dojoRepo repository.DojoRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, dojoRepo: dojoRepo, jwtCfg: jwtCfg}
}

// Register legt einen Benutzer an: bcrypt-Hash des Passworts, Persistenz.
// Liefert ErrEmailAlreadyExists, wenn die E-Mail schon vergeben ist, und
// ErrNotFound, wenn das Dojo nicht existiert.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if existing, _ := uc.userRepo.GetByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	dojo, err := uc.dojoRepo.GetByID(ctx, in.DojoID)
	if err != nil {
		return nil, err
	}
	if dojo == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleTrainer
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		DojoID:       in.DojoID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login prüft E-Mail und Passwort, erzeugt das JWT und liefert Token + Benutzer.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized // unbekannte E-Mail nicht von falschem Passwort unterscheiden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.DojoID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		DojoID:    u.DojoID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
