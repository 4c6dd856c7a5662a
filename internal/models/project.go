package models

import "time"

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Project struct {
	ID             int64      `json:"project_id" db:"project_id"`
	Name           string     `json:"project_name" db:"project_name"`
	Logo           *string    `json:"project_logo" db:"project_logo"`
	OwnerID        int64      `json:"owner" db:"owner"`
	Status         string     `json:"activity_status" db:"activity_status"`
	OnboardingDate time.Time  `json:"onboarding_date" db:"onboarding_date"`
	ModifiedOn     *time.Time `json:"modified_on,omitempty" db:"modified_on"`
	ModifiedBy     *int64     `json:"modified_by,omitempty" db:"modified_by"`
}
