package models

// EnvironmentSummary is the environment slice of a project listing.
type EnvironmentSummary struct {
	ID   int64  `json:"environment_id"`
	Name string `json:"environment_name"`
}

// ProjectSummary is one project in a listing, with every environment the
// project has, not just the ones the membership row points at.
type ProjectSummary struct {
	ID   int64                `json:"project_id"`
	Name string               `json:"project_name"`
	Logo *string              `json:"project_logo"`
	Env  []EnvironmentSummary `json:"env"`
}

type LoginResponse struct {
	UserID   int64            `json:"user_id"`
	Name     string           `json:"name"`
	Token    string           `json:"token"`
	Projects []ProjectSummary `json:"projects"`
}

type RegisterResponse struct {
	UserID  int64    `json:"user_id"`
	Name    string   `json:"name"`
	Company []string `json:"company"`
}

// EnvironmentProvisioned is the raw payload returned when an environment is
// created as part of project provisioning; direct branch creation wraps the
// same payload in the response envelope.
type EnvironmentProvisioned struct {
	Name string `json:"environment_name"`
	ID   int64  `json:"environment_id"`
}

type ProjectProvisioned struct {
	Name        string                 `json:"project_name"`
	ID          int64                  `json:"project_id"`
	Environment EnvironmentProvisioned `json:"environment"`
}
