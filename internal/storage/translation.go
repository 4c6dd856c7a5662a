package storage

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"mlingo-backend/internal/models"
)

func (s *Storage) CreateLanguage(ctx context.Context, language string) (*models.Language, error) {
	query := `
		INSERT INTO languages (language)
		VALUES ($1)
		RETURNING language_id, project_id, environment_id, language
	`

	var lang models.Language
	if err := s.db.QueryRowContext(ctx, query, language).Scan(
		&lang.ID,
		&lang.ProjectID,
		&lang.EnvironmentID,
		&lang.Language,
	); err != nil {
		return nil, err
	}
	return &lang, nil
}

func (s *Storage) ListLanguages(ctx context.Context) ([]models.Language, error) {
	languages := make([]models.Language, 0)
	err := s.db.SelectContext(ctx, &languages, `
		SELECT language_id, project_id, environment_id, language
		FROM languages
		ORDER BY language_id
	`)
	return languages, err
}

func (s *Storage) GetLanguageByTag(ctx context.Context, q sqlx.QueryerContext, tag string) (*models.Language, error) {
	var lang models.Language
	err := sqlx.GetContext(ctx, q, &lang, `
		SELECT language_id, project_id, environment_id, language
		FROM languages
		WHERE language = $1
	`, tag)
	if err == sql.ErrNoRows {
		return nil, ErrLanguageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

// UpsertKey inserts the translation key or, when it already exists, updates
// its status in place and returns the stored row.
func (s *Storage) UpsertKey(ctx context.Context, q sqlx.QueryerContext, key, status string) (*models.Key, error) {
	query := `
		INSERT INTO keys (key, status)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET status = EXCLUDED.status
		RETURNING key_id, project_id, environment_id, key, status
	`

	var k models.Key
	if err := q.QueryRowxContext(ctx, query, key, status).Scan(
		&k.ID,
		&k.ProjectID,
		&k.EnvironmentID,
		&k.Key,
		&k.Status,
	); err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *Storage) GetKeyByName(ctx context.Context, q sqlx.QueryerContext, key string) (*models.Key, error) {
	var k models.Key
	err := sqlx.GetContext(ctx, q, &k, `
		SELECT key_id, project_id, environment_id, key, status
		FROM keys
		WHERE key = $1
	`, key)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (s *Storage) InsertTranslation(ctx context.Context, q sqlx.ExtContext, keyID, languageID int64, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO translations (key_id, language_id, translation)
		VALUES ($1, $2, $3)
	`, keyID, languageID, value)
	return err
}

func (s *Storage) UpdateTranslation(ctx context.Context, q sqlx.ExtContext, keyID, languageID int64, value string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE translations
		SET translation = $1
		WHERE key_id = $2 AND language_id = $3
	`, value, keyID, languageID)
	return err
}

// TranslationRow is one (key, language, value) triple of the flat listing.
type TranslationRow struct {
	KeyID       int64  `json:"key_id" db:"key_id"`
	Key         string `json:"key" db:"key"`
	Status      string `json:"status" db:"status"`
	LanguageID  int64  `json:"language_id" db:"language_id"`
	Language    string `json:"language" db:"language"`
	Translation string `json:"translation" db:"translation"`
}

func (s *Storage) ListTranslations(ctx context.Context) ([]TranslationRow, error) {
	rows := make([]TranslationRow, 0)
	err := s.db.SelectContext(ctx, &rows, `
		SELECT k.key_id, k.key, k.status, l.language_id, l.language, t.translation
		FROM translations t
		JOIN keys k ON k.key_id = t.key_id
		JOIN languages l ON l.language_id = t.language_id
		ORDER BY k.key_id, l.language_id
	`)
	return rows, err
}

func (s *Storage) ListKeysForLanguage(ctx context.Context, languageID int64) ([]TranslationRow, error) {
	rows := make([]TranslationRow, 0)
	err := s.db.SelectContext(ctx, &rows, `
		SELECT k.key_id, k.key, k.status, l.language_id, l.language, t.translation
		FROM translations t
		JOIN keys k ON k.key_id = t.key_id
		JOIN languages l ON l.language_id = t.language_id
		WHERE t.language_id = $1
		ORDER BY k.key_id
	`, languageID)
	return rows, err
}
