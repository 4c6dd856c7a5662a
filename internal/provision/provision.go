// Package provision implements the cascading project/environment creation
// flow: project, its first environment, and the membership ledger rows are
// created as one transactional unit, so a failed step never leaves an orphan
// project or environment behind.
package provision

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
	"mlingo-backend/internal/storage"
)

type Provisioner struct {
	store *storage.Storage
}

func NewProvisioner(store *storage.Storage) *Provisioner {
	return &Provisioner{store: store}
}

// CreateProject provisions a project with its initial environment for the
// acting user. Step order: verify user, insert project, record ownership in
// the ledger, insert the environment, record environment access with the
// OWNER role. Any failure rolls the whole sequence back.
func (p *Provisioner) CreateProject(ctx context.Context, userID int64, req models.CreateProjectRequest) (*models.ProjectProvisioned, error) {
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	var out *models.ProjectProvisioned
	err := p.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := p.store.GetUserByID(ctx, tx, userID); err != nil {
			return err
		}

		project, err := p.store.CreateProject(ctx, tx, storage.CreateProjectInput{
			Name:    req.ProjectName,
			OwnerID: userID,
			Status:  status,
		})
		if err != nil {
			return err
		}

		if err := p.store.RecordProjectOwnership(ctx, tx, userID, project.ID); err != nil {
			return err
		}

		env, err := p.addEnvironment(ctx, tx, userID, project.ID, models.CreateEnvironmentRequest{
			EnvironmentName: req.EnvironmentName,
			IsMain:          req.IsMain,
		})
		if err != nil {
			return err
		}

		out = &models.ProjectProvisioned{
			Name:        project.Name,
			ID:          project.ID,
			Environment: *env,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// AddEnvironment creates a branch on an existing project in its own
// transaction. Project provisioning calls addEnvironment directly instead so
// the environment joins the project's transaction.
func (p *Provisioner) AddEnvironment(ctx context.Context, userID, projectID int64, req models.CreateEnvironmentRequest) (*models.EnvironmentProvisioned, error) {
	var out *models.EnvironmentProvisioned
	err := p.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := p.store.GetProject(ctx, tx, projectID); err != nil {
			return err
		}

		env, err := p.addEnvironment(ctx, tx, userID, projectID, req)
		if err != nil {
			return err
		}
		out = env
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (p *Provisioner) addEnvironment(ctx context.Context, tx *sqlx.Tx, userID, projectID int64, req models.CreateEnvironmentRequest) (*models.EnvironmentProvisioned, error) {
	env, err := p.store.CreateEnvironment(ctx, tx, storage.CreateEnvironmentInput{
		ProjectID: projectID,
		Name:      req.EnvironmentName,
		IsMain:    req.IsMain,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, err
	}

	if err := p.store.RecordEnvironmentAccess(ctx, tx, userID, projectID, env.ID, []string{models.RoleOwner}); err != nil {
		return nil, err
	}

	return &models.EnvironmentProvisioned{
		Name: env.Name,
		ID:   env.ID,
	}, nil
}
