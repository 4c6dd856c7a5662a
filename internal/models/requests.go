package models

// Request bodies are flat structs, one per endpoint.

type RegisterRequest struct {
	Email    string `json:"user_email"`
	Password string `json:"password"`
	Name     string `json:"user_name"`
	Contact  *int64 `json:"user_contact"`
}

type Credentials struct {
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type CreateProjectRequest struct {
	ProjectName     string `json:"project_name"`
	EnvironmentName string `json:"environment_name"`
	IsMain          bool   `json:"is_main"`
	Status          string `json:"status"`
}

type CreateEnvironmentRequest struct {
	EnvironmentName string `json:"environment_name"`
	IsMain          bool   `json:"is_main"`
}

type TranslationValue struct {
	Language    string `json:"language"`
	Translation string `json:"translation"`
}

type TranslateRequest struct {
	Key          string             `json:"key"`
	Status       string             `json:"status"`
	Translations []TranslationValue `json:"translations"`
}

type AddLanguageRequest struct {
	Language string `json:"language"`
}
