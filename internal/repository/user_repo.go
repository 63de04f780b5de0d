package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, username, email, is_admin"

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, req model.CreateUserRequest, currentUserID *int) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindCredentials(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id int, patch model.UserPatch, currentUserID *int) (*model.User, error)
	Delete(ctx context.Context, id int) (*model.User, error)
}

type userRepository struct {
	db     DBTX
	hasher PasswordHasher
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX, hasher PasswordHasher) UserRepository {
	return &userRepository{db: db, hasher: hasher}
}

// Create inserts a new user. Creating an admin requires currentUserID to name
// an existing admin.
func (r *userRepository) Create(ctx context.Context, req model.CreateUserRequest, currentUserID *int) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, model.NewValidationError("Missing required fields")
	}

	if req.IsAdmin {
		if err := r.requireAdmin(ctx, currentUserID, "Only admins can create other admin users."); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := r.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{}
	sql := `INSERT INTO users (username, email, password, is_admin)
            VALUES ($1, $2, $3, $4) RETURNING ` + userColumns
	err = r.db.QueryRow(ctx, sql, req.Username, req.Email, hashedPassword, req.IsAdmin).
		Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", translatePgError(err))
	}
	return user, nil
}

// FindAll retrieves every user, without password digests
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("User", id)
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByUsername retrieves a user by their username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Entity: "User", Field: "username", Value: username}
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// FindCredentials is FindByUsername plus the password digest. Only login uses it.
func (r *userRepository) FindCredentials(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, email, password, is_admin FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &model.NotFoundError{Entity: "User", Field: "username", Value: username}
		}
		return nil, fmt.Errorf("failed to find user credentials: %w", err)
	}
	return user, nil
}

// Update applies the supplied fields of patch in a single statement. Granting
// admin rights requires currentUserID to name an existing admin. An empty
// patch returns the current row unchanged.
func (r *userRepository) Update(ctx context.Context, id int, patch model.UserPatch, currentUserID *int) (*model.User, error) {
	b := newUpdateBuilder("users")
	b.SetString("username", patch.Username)
	b.SetString("email", patch.Email)

	if patch.Password != nil && *patch.Password != "" {
		hashedPassword, err := r.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		b.Set("password", hashedPassword)
	}

	if patch.IsAdmin != nil {
		if *patch.IsAdmin {
			if err := r.requireAdmin(ctx, currentUserID, "Only admins can change admin status."); err != nil {
				return nil, err
			}
		}
		b.Set("is_admin", *patch.IsAdmin)
	}

	if b.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := b.Build(id, userColumns)
	user := &model.User{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("User", id)
		}
		return nil, fmt.Errorf("failed to update user: %w", translatePgError(err))
	}
	return user, nil
}

// Delete removes a user and returns the deleted row
func (r *userRepository) Delete(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("User", id)
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}

// requireAdmin fails with ErrUnauthorized unless currentUserID names an
// existing admin.
func (r *userRepository) requireAdmin(ctx context.Context, currentUserID *int, reason string) error {
	if currentUserID == nil {
		return model.UnauthorizedError("A valid admin user ID is required. " + reason)
	}
	current, err := r.FindByID(ctx, *currentUserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UnauthorizedError(reason)
		}
		return err
	}
	if !current.IsAdmin {
		return model.UnauthorizedError(reason)
	}
	return nil
}
