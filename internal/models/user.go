package models

import "time"

// UserAuth is the credential row. PasswordHash is nil until the user sets a
// password (invited accounts), ResetToken holds the single active reset code.
type UserAuth struct {
	ID           int64      `json:"user_id" db:"user_id"`
	Email        string     `json:"user_email" db:"user_email"`
	PasswordHash *string    `json:"-" db:"password"`
	ResetToken   *string    `json:"-" db:"change_password_token"`
	InvitedBy    *string    `json:"invited_by,omitempty" db:"invited_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ModifiedOn   *time.Time `json:"modified_on,omitempty" db:"modified_on"`
	ModifiedBy   *int64     `json:"modified_by,omitempty" db:"modified_by"`
}

type UserDetails struct {
	ID         int64      `json:"details_id" db:"details_id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	Name       *string    `json:"user_name" db:"user_name"`
	Contact    *int64     `json:"user_contact" db:"user_contact"`
	Image      *string    `json:"user_image,omitempty" db:"user_image"`
	Status     *string    `json:"activity_status,omitempty" db:"activity_status"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ModifiedOn *time.Time `json:"modified_on,omitempty" db:"modified_on"`
	ModifiedBy *int64     `json:"modified_by,omitempty" db:"modified_by"`
}
