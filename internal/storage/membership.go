package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"mlingo-backend/internal/models"
)

// RecordProjectOwnership links the user to a freshly created project. The
// user must already be in the ledger (registration creates a blank row);
// otherwise ErrLedgerRowNotFound. The blank row is filled in place if one is
// left; further projects get their own rows instead of overwriting the
// earlier link. Environment and roles are left untouched.
func (s *Storage) RecordProjectOwnership(ctx context.Context, q sqlx.ExtContext, userID, projectID int64) error {
	var blankID int64
	err := q.QueryRowxContext(ctx, `
		SELECT upe_id
		FROM user_project_env
		WHERE user_id = $1 AND project_id IS NULL
		ORDER BY upe_id
		LIMIT 1
	`, userID).Scan(&blankID)
	if err == nil {
		_, err = q.ExecContext(ctx, `
			UPDATE user_project_env
			SET project_id = $1
			WHERE upe_id = $2
		`, projectID, blankID)
		return err
	}
	if err != sql.ErrNoRows {
		return err
	}

	// No blank row left. The user must still be in the ledger at all.
	if _, err := s.getLedgerRow(ctx, q, userID, nil); err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO user_project_env (user_id, project_id)
		VALUES ($1, $2)
	`, userID, projectID)
	return err
}

// RecordEnvironmentAccess grants the user access to an environment of a
// project. The first environment fills the existing row in place; a second,
// different environment gets its own row with the supplied roles; granting
// the same environment again is a no-op (the unique triple constraint backs
// this up against races).
func (s *Storage) RecordEnvironmentAccess(ctx context.Context, q sqlx.ExtContext, userID, projectID, environmentID int64, roles []string) error {
	row, err := s.getLedgerRow(ctx, q, userID, &projectID)
	if err != nil {
		if err == ErrLedgerRowNotFound {
			return s.insertLedgerRow(ctx, q, userID, projectID, environmentID, roles)
		}
		return err
	}

	switch {
	case row.EnvironmentID == nil:
		_, err = q.ExecContext(ctx, `
			UPDATE user_project_env
			SET environment_id = $1
			WHERE upe_id = $2
		`, environmentID, row.ID)
		return err
	case *row.EnvironmentID != environmentID:
		return s.insertLedgerRow(ctx, q, userID, projectID, environmentID, roles)
	default:
		return nil
	}
}

func (s *Storage) ListMemberships(ctx context.Context, userID int64) ([]models.Membership, error) {
	query := `
		SELECT upe_id, user_id, project_id, environment_id, roles
		FROM user_project_env
		WHERE user_id = $1
		ORDER BY upe_id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.ProjectID, &m.EnvironmentID, pq.Array(&m.Roles)); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return memberships, nil
}

// getLedgerRow fetches the user's oldest ledger row, optionally narrowed to
// rows already linked to the given project or still blank.
func (s *Storage) getLedgerRow(ctx context.Context, q sqlx.ExtContext, userID int64, projectID *int64) (*models.Membership, error) {
	query := `
		SELECT upe_id, user_id, project_id, environment_id
		FROM user_project_env
		WHERE user_id = $1
		ORDER BY upe_id
		LIMIT 1
	`
	args := []interface{}{userID}
	if projectID != nil {
		query = `
			SELECT upe_id, user_id, project_id, environment_id
			FROM user_project_env
			WHERE user_id = $1 AND project_id = $2
			ORDER BY upe_id
			LIMIT 1
		`
		args = append(args, *projectID)
	}

	var m models.Membership
	if err := q.QueryRowxContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.ProjectID,
		&m.EnvironmentID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLedgerRowNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (s *Storage) insertLedgerRow(ctx context.Context, q sqlx.ExtContext, userID, projectID, environmentID int64, roles []string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO user_project_env (user_id, project_id, environment_id, roles)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, project_id, environment_id) DO NOTHING
	`, userID, projectID, environmentID, pq.Array(roles))
	return err
}
