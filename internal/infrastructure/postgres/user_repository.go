package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/turbocafe/turbocafe-api/internal/domain"
	"github.com/turbocafe/turbocafe-api/internal/domain/entity"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, password_hash, first_name, last_name, role, superuser,
		phone_number, address, matric_number, vendor_name, created_at, updated_at`

// UserRepo implements UserRepository over PostgreSQL (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the adapter. Pass a pool or a tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists a new user. Unique violations on username, email, matric
// number or vendor name surface as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.UserProfile) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, role, superuser,
			phone_number, address, matric_number, vendor_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), $13, $14)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.Superuser,
		u.PhoneNumber, u.Address, u.MatricNumber, u.VendorName, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches one user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByEmail fetches one user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	return r.getBy(ctx, "email = $1", email)
}

// GetByUsername fetches one user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.UserProfile, error) {
	return r.getBy(ctx, "username = $1", username)
}

// Update persists the mutable profile fields. Role is intentionally not in
// the SET list: it is fixed at registration.
func (r *UserRepo) Update(ctx context.Context, u *entity.UserProfile) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, phone_number = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, u.ID, u.FirstName, u.LastName, u.PhoneNumber, u.Address, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*entity.UserProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users WHERE %s`, userColumns, where)
	var u entity.UserProfile
	var role string
	var matric, vendorName *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.Superuser,
		&u.PhoneNumber, &u.Address, &matric, &vendorName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.Role = entity.Role(role)
	if matric != nil {
		u.MatricNumber = *matric
	}
	if vendorName != nil {
		u.VendorName = *vendorName
	}
	return &u, nil
}
