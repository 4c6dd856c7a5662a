package models

import "time"

// Environment is a named sub-scope of a project ("branch" in the UI).
// Every project gets one environment with IsMain=true at creation.
type Environment struct {
	ID         int64      `json:"environment_id" db:"environment_id"`
	ProjectID  int64      `json:"project_id" db:"project_id"`
	Name       string     `json:"environment_name" db:"environment_name"`
	IsMain     bool       `json:"is_main" db:"is_main"`
	Status     string     `json:"activity_status" db:"activity_status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ModifiedOn *time.Time `json:"modified_on,omitempty" db:"modified_on"`
	ModifiedBy *int64     `json:"modified_by,omitempty" db:"modified_by"`
}
