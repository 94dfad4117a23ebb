package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-portal/middleware"
	"github.com/Dosada05/tournament-portal/models"
	"github.com/Dosada05/tournament-portal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTournamentID = uuid.MustParse("6f1c2a9e-3d0b-4c55-9a8e-1f2b3c4d5e60")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tournamentRouter(svc services.TournamentService) http.Handler {
	h := NewTournamentHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Get("/tournaments/{tournamentID}", h.GetTournament)
	r.Get("/to/{nameForUrl}", h.ListByNameForURL)
	r.Get("/to/{nameForUrl}/invite-codes", h.ListWithInviteCodes)
	r.Put("/tournaments/{tournamentID}/seeds", h.UpdateSeeds)
	r.Put("/tournaments/{tournamentID}/banner", h.UploadBanner)
	r.Get("/tournaments/{tournamentID}/bracket-preview", h.BracketPreview)
	return r
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func asUser(req *http.Request, id int) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), id))
}

func TestGetTournament(t *testing.T) {
	svc := &fakeTournamentService{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
			if id == testTournamentID {
				return &models.Tournament{ID: id, Name: "In The Zone"}, nil
			}
			return nil, services.ErrTournamentNotFound
		},
	}
	router := tournamentRouter(svc)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/tournaments/"+testTournamentID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tournament models.Tournament `json:"tournament"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "In The Zone", body.Tournament.Name)

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/tournaments/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, httptest.NewRequest(http.MethodGet, "/tournaments/42", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTournament_UnexpectedErrorIs500(t *testing.T) {
	svc := &fakeTournamentService{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
			return nil, errors.New("pq: connection reset")
		},
	}
	rec := do(t, tournamentRouter(svc), httptest.NewRequest(http.MethodGet, "/tournaments/"+testTournamentID.String(), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestListByNameForURL(t *testing.T) {
	var gotName string
	svc := &fakeTournamentService{
		ListByNameForURLFunc: func(ctx context.Context, name string) ([]models.PublicTournament, error) {
			gotName = name
			return []models.PublicTournament{{ID: testTournamentID, Name: "In The Zone"}}, nil
		},
	}
	router := tournamentRouter(svc)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/to/In-The-Zone?tab=teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "In-The-Zone", gotName)
	assert.Contains(t, rec.Body.String(), `"tournaments"`)
}

func TestListByNameForURL_CanonicalTab(t *testing.T) {
	router := tournamentRouter(&fakeTournamentService{})

	cases := []struct {
		query, location string
	}{
		{"?tab=bogus", "/to/itz"},
		{"?tab=", "/to/itz"},
		{"?lang=fi&tab=bogus&x=1", "/to/itz?lang=fi&x=1"},
		{"?tab=seeds&tab=teams", "/to/itz?tab=seeds"},
		{"?note=a%20b%zz&tab=bogus", "/to/itz?note=a+b%25zz"},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := do(t, router, httptest.NewRequest(http.MethodGet, "/to/itz"+tc.query, nil))
			assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/to/itz?tab=map-pool", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListWithInviteCodes(t *testing.T) {
	svc := &fakeTournamentService{
		ListWithInviteCodesFunc: func(ctx context.Context, name string, currentUserID int) ([]models.InviteCodeTournament, error) {
			if currentUserID != 1 {
				return nil, services.ErrForbiddenOperation
			}
			return []models.InviteCodeTournament{{
				Organizer: models.InviteCodeOrganizer{NameForURL: "sendou", OwnerID: 1},
				Teams:     []models.InviteCodeTeam{{Name: "Alpha", InviteCode: "secret"}},
			}}, nil
		},
	}
	router := tournamentRouter(svc)

	rec := do(t, router, httptest.NewRequest(http.MethodGet, "/to/itz/invite-codes", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, asUser(httptest.NewRequest(http.MethodGet, "/to/itz/invite-codes", nil), 2))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, asUser(httptest.NewRequest(http.MethodGet, "/to/itz/invite-codes", nil), 1))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"invite_code": "secret"`)
	assert.NotContains(t, rec.Body.String(), "owner_id")
}

func TestUpdateSeeds(t *testing.T) {
	teamA, teamB := uuid.New(), uuid.New()
	var got []uuid.UUID
	svc := &fakeTournamentService{
		UpdateSeedsFunc: func(ctx context.Context, id uuid.UUID, currentUserID int, seeds []uuid.UUID) (*models.Tournament, error) {
			got = seeds
			if len(seeds) == 1 {
				return nil, services.ErrSeedsInvalid
			}
			return &models.Tournament{ID: id, Seeds: seeds}, nil
		},
	}
	router := tournamentRouter(svc)
	url := "/tournaments/" + testTournamentID.String() + "/seeds"

	body := `{"seeds":["` + teamB.String() + `","` + teamA.String() + `"]}`
	rec := do(t, router, asUser(httptest.NewRequest(http.MethodPut, url, strings.NewReader(body)), 1))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{teamB, teamA}, got)

	rec = do(t, router, asUser(httptest.NewRequest(http.MethodPut, url, strings.NewReader(`{"seeds":["`+teamA.String()+`"]}`)), 1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := []string{`{"seeds":["nope"]}`, `{}`, `{"seeds":[],"extra":1}`, ``}
	for _, b := range bad {
		rec = do(t, router, asUser(httptest.NewRequest(http.MethodPut, url, strings.NewReader(b)), 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code, b)
	}

	rec = do(t, router, httptest.NewRequest(http.MethodPut, url, strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func bannerRequest(t *testing.T, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="banner"; filename="banner.png"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/tournaments/"+testTournamentID.String()+"/banner", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return asUser(req, 1)
}

func TestUploadBanner(t *testing.T) {
	var gotType string
	svc := &fakeTournamentService{
		UploadBannerFunc: func(ctx context.Context, id uuid.UUID, currentUserID int, file io.Reader, contentType string) (*models.Tournament, error) {
			gotType = contentType
			return &models.Tournament{ID: id, BannerBackground: "url(https://cdn.example.com/b.png)"}, nil
		},
	}

	rec := do(t, tournamentRouter(svc), bannerRequest(t, "image/png"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", gotType)
	assert.Contains(t, rec.Body.String(), "url(https://cdn.example.com/b.png)")

	rec = do(t, tournamentRouter(svc), bannerRequest(t, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, tournamentRouter(&fakeTournamentService{}), bannerRequest(t, "image/png"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBracketPreview(t *testing.T) {
	svc := &fakeTournamentService{
		BracketPreviewFunc: func(ctx context.Context, id uuid.UUID) ([]services.BracketPreview, error) {
			return []services.BracketPreview{{Type: models.BracketRoundRobin, Generator: "RoundRobin"}}, nil
		},
	}
	rec := do(t, tournamentRouter(svc), httptest.NewRequest(http.MethodGet, "/tournaments/"+testTournamentID.String()+"/bracket-preview", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"generator": "RoundRobin"`)
}
