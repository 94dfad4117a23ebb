package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/tournament-portal/services"
	"github.com/stretchr/testify/assert"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	b := base{logger: discardLogger()}

	tests := []struct {
		err  error
		want int
	}{
		{services.ErrUserNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", services.ErrTournamentNotFound), http.StatusNotFound},
		{services.ErrValidationFailed, http.StatusBadRequest},
		{services.ErrSeedsInvalid, http.StatusBadRequest},
		{services.ErrInvalidBannerType, http.StatusBadRequest},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrUploadsDisabled, http.StatusServiceUnavailable},
		{errors.New("authentication failed"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			b.mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
