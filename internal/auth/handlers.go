package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mlingo-backend/internal/mailer"
	"mlingo-backend/internal/models"
	"mlingo-backend/internal/respond"
	"mlingo-backend/internal/storage"
)

type Handler struct {
	store  *storage.Storage
	mailer mailer.Mailer
}

func NewHandler(store *storage.Storage, m mailer.Mailer) *Handler {
	return &Handler{store: store, mailer: m}
}

// Register creates a user account
// @Summary Register a user
// @Description Creates the credential row, user details and a blank membership ledger row
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "New user"
// @Success 200 {object} respond.Envelope "User data"
// @Failure 403 {object} respond.Envelope "Email already registered"
// @Router /v1/registerUser [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.Email == "" || req.Password == "" {
		respond.JSON(w, http.StatusBadRequest, "Email and password required", nil)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	user, err := h.store.RegisterUser(r.Context(), req.Email, hash, req.Name, req.Contact)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			respond.JSON(w, http.StatusForbidden, "User with this email already exists", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "User created successfully", models.RegisterResponse{
		UserID:  user.ID,
		Name:    req.Name,
		Company: []string{},
	})
}

// Login authenticates a user
// @Summary User login
// @Description Verifies credentials and returns the user's projects with their environments
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Login credentials"
// @Success 200 {object} respond.Envelope "Login response"
// @Failure 401 {object} respond.Envelope "Password incorrect"
// @Failure 404 {object} respond.Envelope "Unknown user or password not set"
// @Router /v1/authenticateUser [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respond.JSON(w, http.StatusNotFound, "User is not registered, please register.", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	if user.PasswordHash == nil {
		respond.JSON(w, http.StatusNotFound, "Password is not set yet. Please set your password", nil)
		return
	}

	if !CheckPassword(req.Password, *user.PasswordHash) {
		respond.JSON(w, http.StatusUnauthorized, "Password Incorrect!", nil)
		return
	}

	details, err := h.store.GetUserDetails(r.Context(), user.ID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	projects, err := h.store.ProjectSummaries(r.Context(), user.ID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	token, err := GenerateToken(user.ID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	name := ""
	if details.Name != nil {
		name = *details.Name
	}

	respond.JSON(w, http.StatusOK, "Login successful", models.LoginResponse{
		UserID:   user.ID,
		Name:     name,
		Token:    token,
		Projects: projects,
	})
}

// ForgotPassword starts the reset flow
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param email body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "User not found"
// @Router /v1/forgotPassword [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if _, err := h.store.GetUserByEmail(r.Context(), req.Email); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respond.JSON(w, http.StatusNotFound, "User not found", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	code, err := NewResetCode()
	if err != nil {
		respond.Internal(w, err)
		return
	}

	if err := h.store.SetResetToken(r.Context(), req.Email, code); err != nil {
		respond.Internal(w, err)
		return
	}

	if err := h.mailer.SendResetCode(req.Email, code); err != nil {
		// The code is stored; delivery is retried by the mail service, so
		// only log here.
		log.Printf("WARN reset mail dispatch failed for %s: %v", req.Email, err)
	}

	respond.JSON(w, http.StatusOK, "Email sent successfully", nil)
}

// VerifyResetToken checks the mailed code and resets the password
// @Summary Verify reset token and set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email, token and new password"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope "Token mismatch"
// @Failure 404 {object} respond.Envelope "User not found"
// @Router /v1/sendVerificationLink [post]
func (h *Handler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	h.resetPassword(w, r, req)
}

// UpdatePassword resets the password given a valid token
// @Summary Update password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.Credentials true "Email, token and new password"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope "Token mismatch"
// @Failure 404 {object} respond.Envelope "User not found"
// @Router /v1/updatePassword [put]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	h.resetPassword(w, r, req)
}

// resetPassword verifies the stored token and, only on a match, hashes the
// new password and clears the token. A mismatch leaves both untouched.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request, req models.Credentials) {
	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			respond.JSON(w, http.StatusNotFound, "User not found!", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	if user.ResetToken == nil || *user.ResetToken != req.Token {
		respond.JSON(w, http.StatusUnauthorized, "Reset token doesn't match", nil)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	if err := h.store.ResetPassword(r.Context(), req.Email, hash); err != nil {
		respond.Internal(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, "Password updated successfully!", nil)
}
