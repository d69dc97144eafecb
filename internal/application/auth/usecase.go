package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/domain"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
	"github.com/turbocafe/turbocafe-api/pkg/jwt"
)

// JWTConfig is the token generation configuration.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase implements registration, login and profile management. It is
// the concrete Identity Provider the rest of the engine treats as a
// collaborator.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Register creates a user: validates the role, checks username/email
// uniqueness, hashes the password with bcrypt and persists. Matric number
// and vendor name uniqueness is enforced by DB constraints and surfaces as
// ErrDuplicate. Role defaults to student and is immutable afterwards.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleStudent
	}
	if !role.Valid() {
		return nil, domain.ErrValidation
	}
	if existing, err := uc.users.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.users.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.UserProfile{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		MatricNumber: in.MatricNumber,
		VendorName:   in.VendorName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password and returns a signed token plus the profile.
// Unknown email and wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), user.Superuser, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Profile returns the actor's own profile.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile patches the mutable fields of the actor's own profile. Role
// is not part of the request shape and therefore cannot change.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.UserProfile) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		IsAdmin:      u.IsAdmin(),
		PhoneNumber:  u.PhoneNumber,
		Address:      u.Address,
		MatricNumber: u.MatricNumber,
		VendorName:   u.VendorName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
