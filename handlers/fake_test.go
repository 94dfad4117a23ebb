package handlers

import (
	"context"
	"io"

	"github.com/Dosada05/tournament-portal/models"
	"github.com/Dosada05/tournament-portal/services"
	"github.com/google/uuid"
)

type fakeTournamentService struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ListByNameForURLFunc    func(ctx context.Context, name string) ([]models.PublicTournament, error)
	ListWithInviteCodesFunc func(ctx context.Context, name string, currentUserID int) ([]models.InviteCodeTournament, error)
	UpdateSeedsFunc         func(ctx context.Context, id uuid.UUID, currentUserID int, seeds []uuid.UUID) (*models.Tournament, error)
	UploadBannerFunc        func(ctx context.Context, id uuid.UUID, currentUserID int, file io.Reader, contentType string) (*models.Tournament, error)
	BracketPreviewFunc      func(ctx context.Context, id uuid.UUID) ([]services.BracketPreview, error)
}

func (f *fakeTournamentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, services.ErrTournamentNotFound
}

func (f *fakeTournamentService) ListByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error) {
	if f.ListByNameForURLFunc != nil {
		return f.ListByNameForURLFunc(ctx, name)
	}
	return []models.PublicTournament{}, nil
}

func (f *fakeTournamentService) ListWithInviteCodes(ctx context.Context, name string, currentUserID int) ([]models.InviteCodeTournament, error) {
	if f.ListWithInviteCodesFunc != nil {
		return f.ListWithInviteCodesFunc(ctx, name, currentUserID)
	}
	return nil, services.ErrTournamentNotFound
}

func (f *fakeTournamentService) UpdateSeeds(ctx context.Context, id uuid.UUID, currentUserID int, seeds []uuid.UUID) (*models.Tournament, error) {
	if f.UpdateSeedsFunc != nil {
		return f.UpdateSeedsFunc(ctx, id, currentUserID, seeds)
	}
	return &models.Tournament{ID: id, Seeds: seeds}, nil
}

func (f *fakeTournamentService) UploadBanner(ctx context.Context, id uuid.UUID, currentUserID int, file io.Reader, contentType string) (*models.Tournament, error) {
	if f.UploadBannerFunc != nil {
		return f.UploadBannerFunc(ctx, id, currentUserID, file, contentType)
	}
	return nil, services.ErrUploadsDisabled
}

func (f *fakeTournamentService) BracketPreview(ctx context.Context, id uuid.UUID) ([]services.BracketPreview, error) {
	if f.BracketPreviewFunc != nil {
		return f.BracketPreviewFunc(ctx, id)
	}
	return []services.BracketPreview{}, nil
}

type fakeUserPageLoader struct {
	LoadFunc func(ctx context.Context, params services.UserPageParams) (*services.UserPage, error)
}

func (f *fakeUserPageLoader) Load(ctx context.Context, params services.UserPageParams) (*services.UserPage, error) {
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx, params)
	}
	return nil, services.ErrUserNotFound
}
