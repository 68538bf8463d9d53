package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"canteen-service/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

const userColumns = `id, email, password, role, first_name, last_name, shop_id`

func (r *UserRepository) scanUser(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	var first, last sql.NullString
	var shopID sql.NullInt64
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role, &first, &last, &shopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	user.FirstName = first.String
	user.LastName = last.String
	if shopID.Valid {
		id := int(shopID.Int64)
		user.ShopID = &id
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetUserByCredentials looks up a user by email and hashed password.
func (r *UserRepository) GetUserByCredentials(ctx context.Context, email, hashedPassword string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND password = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, hashedPassword))
}

// CreateUser inserts a new account. A taken email returns ErrConflict.
func (r *UserRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	var existing int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM users WHERE email = ?`, user.Email).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("email %s: %w", user.Email, ErrConflict)
	}

	query := `INSERT INTO users (email, password, role, first_name, last_name, shop_id) VALUES (?, ?, ?, ?, ?, ?)`
	var shopID interface{}
	if user.ShopID != nil {
		shopID = *user.ShopID
	}
	res, err := r.db.ExecContext(ctx, query, user.Email, user.Password, user.Role, user.FirstName, user.LastName, shopID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

// UpdateUser applies the non-nil fields of update and returns the
// fresh row.
func (r *UserRepository) UpdateUser(ctx context.Context, id int, update *entity.UserUpdate) (*entity.User, error) {
	var clauses []string
	var args []interface{}
	if update.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, *update.Email)
	}
	if update.FirstName != nil {
		clauses = append(clauses, "first_name = ?")
		args = append(args, *update.FirstName)
	}
	if update.LastName != nil {
		clauses = append(clauses, "last_name = ?")
		args = append(args, *update.LastName)
	}
	if len(clauses) == 0 {
		return r.GetUserByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = ?`, strings.Join(clauses, ", "))
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return r.GetUserByID(ctx, id)
}
