package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/tournament-portal/middleware"
	"github.com/Dosada05/tournament-portal/services"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	base
	loader services.UserPageLoader
}

func NewUserHandler(loader services.UserPageLoader, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		base:   base{logger: logger},
		loader: loader,
	}
}

// GetUserPage godoc
// @Summary User profile page
// @Tags users
// @Produce json
// @Param identifier path string true "Discord id or custom URL"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /u/{identifier} [get]
func (h *UserHandler) GetUserPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.loader.Load(r.Context(), services.UserPageParams{
		Identifier: chi.URLParam(r, "identifier"),
		ViewerID:   middleware.OptionalUserID(r.Context()),
	})
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeOK(w, r, jsonResponse{
		"user": page.Data,
		"meta": jsonResponse{"title": page.Title},
		"nav":  page.Nav,
	})
}
