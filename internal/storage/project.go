package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
)

type CreateProjectInput struct {
	Name    string
	OwnerID int64
	Status  string
}

func (s *Storage) CreateProject(ctx context.Context, q sqlx.QueryerContext, input CreateProjectInput) (*models.Project, error) {
	query := `
		INSERT INTO projects (project_name, owner, activity_status, onboarding_date, modified_by)
		VALUES ($1, $2, $3, now(), $2)
		RETURNING project_id, project_name, project_logo, owner, activity_status, onboarding_date
	`

	var project models.Project
	if err := q.QueryRowxContext(ctx, query, input.Name, input.OwnerID, input.Status).Scan(
		&project.ID,
		&project.Name,
		&project.Logo,
		&project.OwnerID,
		&project.Status,
		&project.OnboardingDate,
	); err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *Storage) GetProject(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Project, error) {
	query := `
		SELECT project_id, project_name, project_logo, owner, activity_status, onboarding_date
		FROM projects
		WHERE project_id = $1
	`

	var project models.Project
	if err := sqlx.GetContext(ctx, q, &project, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return &project, nil
}

// ProjectSummaries walks every membership ledger row of the user and builds
// the project listing used by login and GET /v2.0/getProjects. Projects are
// deduplicated across rows and each one lists all of its environments, not
// just the environment a particular row grants.
func (s *Storage) ProjectSummaries(ctx context.Context, userID int64) ([]models.ProjectSummary, error) {
	memberships, err := s.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	summaries := make([]models.ProjectSummary, 0)
	for _, m := range memberships {
		if m.ProjectID == nil || seen[*m.ProjectID] {
			continue
		}
		seen[*m.ProjectID] = true

		project, err := s.GetProject(ctx, s.db, *m.ProjectID)
		if err != nil {
			if err == ErrProjectNotFound {
				continue
			}
			return nil, err
		}

		envs, err := s.ListEnvironments(ctx, project.ID)
		if err != nil {
			return nil, err
		}

		summary := models.ProjectSummary{
			ID:   project.ID,
			Name: project.Name,
			Logo: project.Logo,
			Env:  make([]models.EnvironmentSummary, 0, len(envs)),
		}
		for _, env := range envs {
			summary.Env = append(summary.Env, models.EnvironmentSummary{
				ID:   env.ID,
				Name: env.Name,
			})
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
