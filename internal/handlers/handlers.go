package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"mlingo-backend/internal/auth"
	"mlingo-backend/internal/cache"
	"mlingo-backend/internal/middleware"
	"mlingo-backend/internal/models"
	"mlingo-backend/internal/provision"
	"mlingo-backend/internal/respond"
	"mlingo-backend/internal/storage"
)

const projectListTTL = time.Minute

type Handler struct {
	store       *storage.Storage
	cache       cache.Client
	provisioner *provision.Provisioner
	auth        *auth.Handler
}

func New(store *storage.Storage, cacheClient cache.Client, provisioner *provision.Provisioner, authHandler *auth.Handler) *Handler {
	return &Handler{
		store:       store,
		cache:       cacheClient,
		provisioner: provisioner,
		auth:        authHandler,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	// Users
	r.Post("/v1/registerUser", h.auth.Register)
	r.With(middleware.RateLimitLogin(h.cache)).Post("/v1/authenticateUser", h.auth.Login)
	r.With(middleware.RateLimitPasswordReset(h.cache)).Post("/v1/forgotPassword", h.auth.ForgotPassword)
	r.Post("/v1/sendVerificationLink", h.auth.VerifyResetToken)
	r.Put("/v1/updatePassword", h.auth.UpdatePassword)

	// Projects
	r.Post("/v2.0/{user_id}/createProject", h.CreateProject)
	r.Post("/v2.0/{user_id}/{project_id}/createEnvironment", h.CreateEnvironment)
	r.Get("/v2.0/getProjects", h.GetProjects)

	// Translations
	r.Post("/v1/addLanguage", h.AddLanguage)
	r.Get("/v1/getAllLanguage", h.GetAllLanguages)
	r.Post("/v1/addTranslation", h.AddTranslation)
	r.Put("/v1/updateTranslation", h.UpdateTranslation)
	r.Get("/v1/getAllTranslations", h.GetAllTranslations)
	r.Get("/v1/getLanguageKeys", h.GetLanguageKeys)

	r.Get("/health", h.Health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

// CreateProject provisions a project with its first environment
// @Summary Create a project
// @Description Creates the project, its initial environment and the membership ledger rows in one transaction
// @Tags projects
// @Accept json
// @Produce json
// @Param user_id path int true "Acting user id"
// @Param project body models.CreateProjectRequest true "Project and initial environment"
// @Success 200 {object} respond.Envelope "Project and environment ids"
// @Failure 404 {object} respond.Envelope "User does not exist"
// @Router /v2.0/{user_id}/createProject [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.ProjectName == "" || req.EnvironmentName == "" {
		respond.JSON(w, http.StatusBadRequest, "Project and environment names required", nil)
		return
	}

	result, err := h.provisioner.CreateProject(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) || errors.Is(err, storage.ErrLedgerRowNotFound) {
			respond.JSON(w, http.StatusNotFound, "User does not exist!", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	h.invalidateProjectList(userID)
	respond.JSON(w, http.StatusOK, "Project created successfully", result)
}

// CreateEnvironment adds a branch to an existing project
// @Summary Create an environment
// @Tags projects
// @Accept json
// @Produce json
// @Param user_id path int true "Acting user id"
// @Param project_id path int true "Project id"
// @Param environment body models.CreateEnvironmentRequest true "Environment"
// @Success 200 {object} respond.Envelope "Environment id"
// @Failure 404 {object} respond.Envelope "Project not found"
// @Router /v2.0/{user_id}/{project_id}/createEnvironment [post]
func (h *Handler) CreateEnvironment(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid user id", nil)
		return
	}
	projectID, err := strconv.ParseInt(chi.URLParam(r, "project_id"), 10, 64)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid project id", nil)
		return
	}

	var req models.CreateEnvironmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if req.EnvironmentName == "" {
		respond.JSON(w, http.StatusBadRequest, "Environment name required", nil)
		return
	}

	result, err := h.provisioner.AddEnvironment(r.Context(), userID, projectID, req)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			respond.JSON(w, http.StatusNotFound, "Project not found!", nil)
			return
		}
		respond.Internal(w, err)
		return
	}

	h.invalidateProjectList(userID)
	respond.JSON(w, http.StatusOK, "Branch created successfully!", result)
}

// GetProjects lists the acting user's projects with nested environments
// @Summary List projects
// @Description The acting user is taken from the literal user_id header
// @Tags projects
// @Produce json
// @Param user_id header int true "Acting user id"
// @Success 200 {object} respond.Envelope "Projects"
// @Router /v2.0/getProjects [get]
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.Header.Get("user_id"), 10, 64)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, "Invalid user_id header", nil)
		return
	}

	if h.cache != nil {
		if cached, err := h.cache.GetProjectList(userID); err == nil {
			respond.JSON(w, http.StatusOK, "Projects fetched successfully", json.RawMessage(cached))
			return
		}
	}

	summaries, err := h.store.ProjectSummaries(r.Context(), userID)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			if err := h.cache.SetProjectList(userID, string(payload), projectListTTL); err != nil {
				log.Printf("WARN project list cache write failed: %v", err)
			}
		}
	}

	respond.JSON(w, http.StatusOK, "Projects fetched successfully", summaries)
}

// Health reports storage connectivity
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} respond.Envelope
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, "database unreachable", nil)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", nil)
}

func (h *Handler) invalidateProjectList(userID int64) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateProjectList(userID); err != nil {
		log.Printf("WARN project list cache invalidation failed: %v", err)
	}
}
