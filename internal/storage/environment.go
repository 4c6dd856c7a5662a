package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
)

type CreateEnvironmentInput struct {
	ProjectID int64
	Name      string
	IsMain    bool
	CreatedBy int64
}

func (s *Storage) CreateEnvironment(ctx context.Context, q sqlx.QueryerContext, input CreateEnvironmentInput) (*models.Environment, error) {
	query := `
		INSERT INTO environments (project_id, environment_name, is_main, activity_status, modified_on, modified_by)
		VALUES ($1, $2, $3, $4, now(), $5)
		RETURNING environment_id, project_id, environment_name, is_main, activity_status, created_at
	`

	var env models.Environment
	if err := q.QueryRowxContext(ctx, query,
		input.ProjectID, input.Name, input.IsMain, models.StatusActive, input.CreatedBy,
	).Scan(
		&env.ID,
		&env.ProjectID,
		&env.Name,
		&env.IsMain,
		&env.Status,
		&env.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &env, nil
}

func (s *Storage) GetEnvironment(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Environment, error) {
	query := `
		SELECT environment_id, project_id, environment_name, is_main, activity_status, created_at
		FROM environments
		WHERE environment_id = $1
	`

	var env models.Environment
	if err := sqlx.GetContext(ctx, q, &env, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrEnvironmentNotFound
		}
		return nil, err
	}

	return &env, nil
}

func (s *Storage) ListEnvironments(ctx context.Context, projectID int64) ([]models.Environment, error) {
	query := `
		SELECT environment_id, project_id, environment_name, is_main, activity_status, created_at
		FROM environments
		WHERE project_id = $1
		ORDER BY environment_id
	`

	envs := make([]models.Environment, 0)
	if err := s.db.SelectContext(ctx, &envs, query, projectID); err != nil {
		return nil, err
	}
	return envs, nil
}
