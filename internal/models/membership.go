package models

const (
	RoleOwner      = "OWNER"
	RoleAdmin      = "ADMIN"
	RoleDeveloper  = "DEVELOPER"
	RoleTranslator = "TRANSLATOR"
)

// Membership is one row of the user/project/environment ledger. A blank row
// (nil project and environment) is created at registration and filled in as
// the user's first project and environment are provisioned; additional
// environments get their own rows. The triple (user, project, environment)
// is unique, so re-granting the same access is a no-op.
type Membership struct {
	ID            int64    `json:"upe_id" db:"upe_id"`
	UserID        int64    `json:"user_id" db:"user_id"`
	ProjectID     *int64   `json:"project_id" db:"project_id"`
	EnvironmentID *int64   `json:"environment_id" db:"environment_id"`
	Roles         []string `json:"roles" db:"roles"`
}
