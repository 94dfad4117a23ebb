package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-portal/middleware"
	"github.com/Dosada05/tournament-portal/searchparams"
	"github.com/Dosada05/tournament-portal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBannerBytes = 8 << 20

// tournamentTabs are the tabs of the tournament page.
var tournamentTabs = map[string]bool{
	"overview": true,
	"teams":    true,
	"map-pool": true,
	"seeds":    true,
}

type TournamentHandler struct {
	base
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		base:              base{logger: logger},
		tournamentService: ts,
	}
}

// GetTournament godoc
// @Summary Tournament by id
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"tournament": tournament})
}

// ListByNameForURL godoc
// @Summary Tournaments sharing a URL name
// @Tags tournaments
// @Produce json
// @Param nameForUrl path string true "URL name, case-insensitive"
// @Param tab query string false "overview, teams, map-pool or seeds"
// @Success 200 {object} map[string]interface{}
// @Success 308 "unknown tab removed"
// @Router /to/{nameForUrl} [get]
func (h *TournamentHandler) ListByNameForURL(w http.ResponseWriter, r *http.Request) {
	if target, changed := canonicalTab(r); changed {
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	tournaments, err := h.tournamentService.ListByNameForURL(r.Context(), chi.URLParam(r, "nameForUrl"))
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"tournaments": tournaments})
}

// canonicalTab drops an empty or unknown tab and collapses repeated ones.
func canonicalTab(r *http.Request) (string, bool) {
	values, present := r.URL.Query()["tab"]
	if !present {
		return "", false
	}
	history := searchparams.FromRequest(r)
	switch {
	case len(values) == 1 && tournamentTabs[values[0]]:
		return "", false
	case tournamentTabs[values[0]]:
		searchparams.Set(history, "tab", searchparams.One(values[0]))
	default:
		searchparams.Set(history, "tab", searchparams.None)
	}
	return history.Target()
}

// ListWithInviteCodes godoc
// @Summary Tournaments with team invite codes, organizer only
// @Tags tournaments
// @Produce json
// @Security BearerAuth
// @Param nameForUrl path string true "URL name, case-insensitive"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /to/{nameForUrl}/invite-codes [get]
func (h *TournamentHandler) ListWithInviteCodes(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		h.unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	tournaments, err := h.tournamentService.ListWithInviteCodes(r.Context(), chi.URLParam(r, "nameForUrl"), currentUserID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"tournaments": tournaments})
}

type updateSeedsRequest struct {
	Seeds []uuid.UUID `json:"seeds"`
}

// UpdateSeeds godoc
// @Summary Replace the seed order
// @Tags tournaments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /tournaments/{tournamentID}/seeds [put]
func (h *TournamentHandler) UpdateSeeds(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		h.unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input updateSeedsRequest
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if input.Seeds == nil {
		h.badRequestResponse(w, r, errors.New("seeds is required"))
		return
	}

	tournament, err := h.tournamentService.UpdateSeeds(r.Context(), id, currentUserID, input.Seeds)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"tournament": tournament})
}

// UploadBanner godoc
// @Summary Upload the tournament banner
// @Tags tournaments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param tournamentID path string true "Tournament UUID"
// @Param banner formData file true "png, jpeg or webp image"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /tournaments/{tournamentID}/banner [put]
func (h *TournamentHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		h.unauthorizedResponse(w, r, "failed to identify current user for banner upload")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBannerBytes)
	if err := r.ParseMultipartForm(maxBannerBytes); err != nil {
		h.badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("banner")
	if err != nil {
		h.badRequestResponse(w, r, fmt.Errorf("failed to get banner file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		h.badRequestResponse(w, r, errors.New("content-type header is required for banner"))
		return
	}

	tournament, err := h.tournamentService.UploadBanner(r.Context(), id, currentUserID, file, contentType)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"tournament": tournament})
}

// BracketPreview godoc
// @Summary Seeded bracket preview
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament UUID"
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/bracket-preview [get]
func (h *TournamentHandler) BracketPreview(w http.ResponseWriter, r *http.Request) {
	id, err := getUUIDFromURL(r, "tournamentID")
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	previews, err := h.tournamentService.BracketPreview(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeOK(w, r, jsonResponse{"brackets": previews})
}
