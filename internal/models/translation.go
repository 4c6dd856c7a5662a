package models

const (
	KeyStatusDraft     = "DRAFT"
	KeyStatusPublished = "PUBLISHED"
)

type Language struct {
	ID            int64  `json:"language_id" db:"language_id"`
	ProjectID     *int64 `json:"project_id" db:"project_id"`
	EnvironmentID *int64 `json:"environment_id" db:"environment_id"`
	Language      string `json:"language" db:"language"`
}

type Key struct {
	ID            int64  `json:"key_id" db:"key_id"`
	ProjectID     *int64 `json:"project_id" db:"project_id"`
	EnvironmentID *int64 `json:"environment_id" db:"environment_id"`
	Key           string `json:"key" db:"key"`
	Status        string `json:"status" db:"status"`
}

type Translation struct {
	ID            int64  `json:"translation_id" db:"translation_id"`
	ProjectID     *int64 `json:"project_id" db:"project_id"`
	EnvironmentID *int64 `json:"environment_id" db:"environment_id"`
	KeyID         int64  `json:"key_id" db:"key_id"`
	LanguageID    int64  `json:"language_id" db:"language_id"`
	Translation   string `json:"translation" db:"translation"`
}
