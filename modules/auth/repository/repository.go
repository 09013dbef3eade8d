package repository

import (
	"context"
	"database/sql"
	"errors"

	"meteocal/core/database"
	"meteocal/core/logger"
	"meteocal/modules/auth/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserRepository is the persistence contract for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	// GetUserByID and GetUserByEmail return nil, nil when no row matches.
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUsersExcept(ctx context.Context, id uuid.UUID) ([]entity.User, error)
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	// GetUsersByEvent lists the owners of the calendars containing eventID.
	GetUsersByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.User, error)
}

type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.IDatabase) *AuthRepository {
	return &AuthRepository{DB: db}
}

const userColumns = `id, first_name, last_name, email, password, user_group, created_at, updated_at`

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, password, user_group)
		VALUES (:first_name, :last_name, :email, :password, :user_group)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, user)
	if err != nil {
		logger.Error("AuthRepository:CreateUser:Error", "error", err)
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			logger.Error("AuthRepository:CreateUser:Scan:Error", "error", err)
			return nil, err
		}
	}
	return user, rows.Err()
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.DB.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.DB.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUsersExcept(ctx context.Context, id uuid.UUID) ([]entity.User, error) {
	users := []entity.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id <> $1 ORDER BY last_name, first_name`
	if err := r.DB.SelectContext(ctx, &users, query, id); err != nil {
		logger.Error("AuthRepository:GetUsersExcept:Error", "error", err)
		return nil, err
	}
	return users, nil
}

func (r *AuthRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	users := []entity.User{}
	if len(ids) == 0 {
		return users, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.SQLx().Rebind(query)
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("AuthRepository:GetUsersByIDs:Error", "error", err)
		return nil, err
	}
	return users, nil
}

func (r *AuthRepository) GetUsersByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.User, error) {
	users := []entity.User{}
	query := `
		SELECT u.id, u.first_name, u.last_name, u.email, u.password, u.user_group, u.created_at, u.updated_at
		FROM users u
		JOIN calendars c ON c.owner_id = u.id
		JOIN calendar_events ce ON ce.calendar_id = c.id
		WHERE ce.event_id = $1
		ORDER BY u.last_name, u.first_name
	`
	if err := r.DB.SelectContext(ctx, &users, query, eventID); err != nil {
		logger.Error("AuthRepository:GetUsersByEvent:Error", "error", err)
		return nil, err
	}
	return users, nil
}
