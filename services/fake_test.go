package services

import (
	"context"
	"io"
	"sync"

	"github.com/Dosada05/tournament-portal/models"
	"github.com/Dosada05/tournament-portal/repositories"
	"github.com/Dosada05/tournament-portal/storage"
	"github.com/google/uuid"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepository struct {
	FindByIDFunc                        func(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	FindByNameForURLFunc                func(ctx context.Context, name string) ([]models.PublicTournament, error)
	FindByNameForURLWithInviteCodesFunc func(ctx context.Context, name string) ([]models.InviteCodeTournament, error)
	UpdateSeedsFunc                     func(ctx context.Context, params repositories.UpdateSeedsParams) (*models.Tournament, error)
	UpdateBannerBackgroundFunc          func(ctx context.Context, id uuid.UUID, background string) error
	BracketsByTournamentIDFunc          func(ctx context.Context, id uuid.UUID) ([]models.Bracket, error)
}

func (f *FakeTournamentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *FakeTournamentRepository) FindByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error) {
	if f.FindByNameForURLFunc != nil {
		return f.FindByNameForURLFunc(ctx, name)
	}
	return []models.PublicTournament{}, nil
}

func (f *FakeTournamentRepository) FindByNameForURLWithInviteCodes(ctx context.Context, name string) ([]models.InviteCodeTournament, error) {
	if f.FindByNameForURLWithInviteCodesFunc != nil {
		return f.FindByNameForURLWithInviteCodesFunc(ctx, name)
	}
	return []models.InviteCodeTournament{}, nil
}

func (f *FakeTournamentRepository) UpdateSeeds(ctx context.Context, params repositories.UpdateSeedsParams) (*models.Tournament, error) {
	if f.UpdateSeedsFunc != nil {
		return f.UpdateSeedsFunc(ctx, params)
	}
	return &models.Tournament{ID: params.TournamentID, Seeds: params.Seeds}, nil
}

func (f *FakeTournamentRepository) UpdateBannerBackground(ctx context.Context, id uuid.UUID, background string) error {
	if f.UpdateBannerBackgroundFunc != nil {
		return f.UpdateBannerBackgroundFunc(ctx, id, background)
	}
	return nil
}

func (f *FakeTournamentRepository) BracketsByTournamentID(ctx context.Context, id uuid.UUID) ([]models.Bracket, error) {
	if f.BracketsByTournamentIDFunc != nil {
		return f.BracketsByTournamentIDFunc(ctx, id)
	}
	return []models.Bracket{}, nil
}

// ------------------------
// Fake User / Badge Repos
// ------------------------

type FakeUserRepository struct {
	FindByIdentifierFunc func(ctx context.Context, identifier string) (*models.User, error)
}

func (f *FakeUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if f.FindByIdentifierFunc != nil {
		return f.FindByIdentifierFunc(ctx, identifier)
	}
	return nil, repositories.ErrUserNotFound
}

type FakeBadgeRepository struct {
	calls              int
	CountsByUserIDFunc func(ctx context.Context, userID int) ([]models.BadgeCount, error)
}

func (f *FakeBadgeRepository) CountsByUserID(ctx context.Context, userID int) ([]models.BadgeCount, error) {
	f.calls++
	if f.CountsByUserIDFunc != nil {
		return f.CountsByUserIDFunc(ctx, userID)
	}
	return []models.BadgeCount{}, nil
}

type fakeCountries map[string]models.Country

func (f fakeCountries) Lookup(code string) (models.Country, bool) {
	c, ok := f[code]
	return c, ok
}

// ------------------------
// Fake Uploader / Broadcaster
// ------------------------

type FakeUploader struct {
	UploadFunc func(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error)
	DeleteFunc func(ctx context.Context, key string) error
	deleted    []string
}

func (f *FakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, key, contentType, reader)
	}
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *FakeUploader) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, key)
	}
	return nil
}

func (f *FakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type sentMessage struct {
	room    string
	message interface{}
}

type FakeBroadcaster struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *FakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{room: roomID, message: message})
}
