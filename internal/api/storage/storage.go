package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cuongbtq/taskqueue-be/internal/api/domain"
	"github.com/cuongbtq/taskqueue-be/internal/api/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Queries use ? placeholders and go through Rebind so they run on both
// postgres and sqlite.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		db: db,
	}
}

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (int64, error) {
	query := s.db.Rebind(`
		INSERT INTO users (username, email)
		VALUES (?, ?)
		RETURNING id
	`)

	var id int64
	if err := s.db.QueryRowxContext(ctx, query, user.Username, user.Email).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create user: %w", classify(err))
	}

	return id, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, username, email
		FROM users
		ORDER BY id
	`

	users := []model.User{}
	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (s *Storage) CreateAsset(ctx context.Context, asset *model.Asset) (int64, error) {
	query := s.db.Rebind(`
		INSERT INTO assets (name, value, user_id)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	var id int64
	if err := s.db.QueryRowxContext(ctx, query, asset.Name, asset.Value, asset.UserID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create asset: %w", classify(err))
	}

	return id, nil
}

func (s *Storage) ListAssets(ctx context.Context) ([]model.AssetWithOwner, error) {
	query := `
		SELECT a.id, a.name, a.value, a.user_id, u.username
		FROM assets a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.id
	`

	assets := []model.AssetWithOwner{}
	if err := s.db.SelectContext(ctx, &assets, query); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return assets, nil
}

// classify tags driver constraint errors with the matching domain error,
// keeping the driver error in the chain for logging
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, err)
		case "23503":
			return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, err)
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled
			msg := liteErr.Error()
			if strings.Contains(msg, "UNIQUE") {
				return fmt.Errorf("%w: %w", domain.ErrUniqueViolation, err)
			}
			if strings.Contains(msg, "FOREIGN KEY") {
				return fmt.Errorf("%w: %w", domain.ErrForeignKeyViolation, err)
			}
		}
	}

	return err
}
