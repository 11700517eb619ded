package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/dev-network/internal/apperror"
	"github.com/sakif/dev-network/internal/auth"
	"github.com/sakif/dev-network/internal/service"
)

// ProfileHandler manages the developer-profile endpoints.
//
//   - HandleGetMe     → the caller's own profile
//   - HandleUpsert    → create-or-merge the caller's profile
//   - HandleList      → every profile, newest first
//   - HandleGetByUser → one profile by its owner's user id
//   - HandleDelete    → remove the caller's profile and account
type ProfileHandler struct {
	profiles *service.ProfileService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// profileRequest is the JSON body for POST /api/profile. Only status and
// skills are mandatory; everything else merges in when present. Skills is a
// single comma-separated string; the service splits it.
type profileRequest struct {
	Status         string `json:"status" validate:"required"`
	Skills         string `json:"skills" validate:"required"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// HandleGetMe returns the authenticated caller's profile.
//
// HTTP: GET /api/profile/me
// Auth: required
func (h *ProfileHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	profile, err := h.profiles.GetOwn(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpsert creates the caller's profile or merges new values into it.
// The response is the full merged profile either way.
//
// HTTP: POST /api/profile
// Auth: required
func (h *ProfileHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "request body must be valid JSON"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, validationError(err))
		return
	}

	profile, err := h.profiles.Upsert(r.Context(), userID, service.ProfileInput{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GitHubUsername: req.GitHubUsername,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleList returns all profiles, newest first. Public.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// HandleGetByUser returns one profile by its owner's user id. Public.
//
// HTTP: GET /api/profile/user/{userID}
func (h *ProfileHandler) HandleGetByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDelete removes the caller's profile and account in one shot.
//
// HTTP: DELETE /api/profile
// Auth: required
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.profiles.DeleteAccount(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("account deleted", slog.String("userID", userID))
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
