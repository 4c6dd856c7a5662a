package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
)

// RegisterUser creates the credential row, the details row and the blank
// membership ledger row in one transaction. The ledger row starts with no
// project or environment; provisioning fills it in later.
func (s *Storage) RegisterUser(ctx context.Context, email, passwordHash, name string, contact *int64) (*models.UserAuth, error) {
	existing, err := s.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	var user models.UserAuth
	err = s.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users_auth (user_email, password)
			VALUES ($1, $2)
			RETURNING user_id, user_email, password, change_password_token, created_at
		`
		if err := tx.QueryRowContext(ctx, query, email, passwordHash).Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.ResetToken,
			&user.CreatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_details (user_id, user_name, user_contact)
			VALUES ($1, $2, $3)
		`, user.ID, name, contact); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_project_env (user_id)
			VALUES ($1)
		`, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	query := `
		SELECT user_id, user_email, password, change_password_token, created_at
		FROM users_auth
		WHERE user_email = $1
	`

	var user models.UserAuth
	if err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.ResetToken,
		&user.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.UserAuth, error) {
	query := `
		SELECT user_id, user_email, password, change_password_token, created_at
		FROM users_auth
		WHERE user_id = $1
	`

	var user models.UserAuth
	if err := sqlx.GetContext(ctx, q, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *Storage) GetUserDetails(ctx context.Context, userID int64) (*models.UserDetails, error) {
	query := `
		SELECT details_id, user_id, user_name, user_contact, created_at
		FROM user_details
		WHERE user_id = $1
	`

	var details models.UserDetails
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&details.ID,
		&details.UserID,
		&details.Name,
		&details.Contact,
		&details.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &details, nil
}

// SetResetToken stores the single active password-reset code for the user.
func (s *Storage) SetResetToken(ctx context.Context, email, token string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users_auth
		SET change_password_token = $1, modified_on = now()
		WHERE user_email = $2
	`, token, email)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ResetPassword stores the new hash and clears the reset token together.
func (s *Storage) ResetPassword(ctx context.Context, email, passwordHash string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users_auth
		SET password = $1, change_password_token = NULL, modified_on = now()
		WHERE user_email = $2
	`, passwordHash, email)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
