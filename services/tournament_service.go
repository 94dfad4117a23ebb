package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/tournament-portal/brackets"
	"github.com/Dosada05/tournament-portal/models"
	"github.com/Dosada05/tournament-portal/repositories"
	"github.com/Dosada05/tournament-portal/storage"
	"github.com/google/uuid"
)

// RoomBroadcaster pushes a message to every websocket client of a room.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type BracketPreview struct {
	BracketID uuid.UUID                `json:"bracket_id"`
	Type      models.BracketType       `json:"type"`
	Generator string                   `json:"generator"`
	Matches   []*brackets.BracketMatch `json:"matches"`
}

type TournamentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ListByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error)
	ListWithInviteCodes(ctx context.Context, name string, currentUserID int) ([]models.InviteCodeTournament, error)
	UpdateSeeds(ctx context.Context, id uuid.UUID, currentUserID int, seeds []uuid.UUID) (*models.Tournament, error)
	UploadBanner(ctx context.Context, id uuid.UUID, currentUserID int, file io.Reader, contentType string) (*models.Tournament, error)
	BracketPreview(ctx context.Context, id uuid.UUID) ([]BracketPreview, error)
}

type tournamentService struct {
	repo        repositories.TournamentRepository
	uploader    storage.FileUploader
	broadcaster RoomBroadcaster
	logger      *slog.Logger
}

// NewTournamentService wires the service. uploader may be nil, which disables banner uploads.
func NewTournamentService(
	repo repositories.TournamentRepository,
	uploader storage.FileUploader,
	broadcaster RoomBroadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		repo:        repo,
		uploader:    uploader,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *tournamentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	if t == nil {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

func (s *tournamentService) ListByNameForURL(ctx context.Context, name string) ([]models.PublicTournament, error) {
	tournaments, err := s.repo.FindByNameForURL(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find tournaments by name %q: %w", name, err)
	}
	return tournaments, nil
}

func (s *tournamentService) ListWithInviteCodes(ctx context.Context, name string, currentUserID int) ([]models.InviteCodeTournament, error) {
	tournaments, err := s.repo.FindByNameForURLWithInviteCodes(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find tournaments with invite codes by name %q: %w", name, err)
	}
	if len(tournaments) == 0 {
		return nil, ErrTournamentNotFound
	}
	for _, t := range tournaments {
		if t.Organizer.OwnerID != currentUserID {
			return nil, ErrForbiddenOperation
		}
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateSeeds(ctx context.Context, id uuid.UUID, currentUserID int, seeds []uuid.UUID) (*models.Tournament, error) {
	t, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if err := validateSeeds(t, seeds); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateSeeds(ctx, repositories.UpdateSeedsParams{TournamentID: id, Seeds: seeds})
	if err != nil {
		return nil, fmt.Errorf("failed to update seeds of tournament %s: %w", id, err)
	}
	updated.Organizer = t.Organizer
	updated.Teams = t.Teams

	s.broadcast(id, brackets.MessageSeedsUpdated, map[string]interface{}{"seeds": updated.Seeds})
	s.logger.InfoContext(ctx, "tournament seeds updated", slog.String("tournament_id", id.String()), slog.Int("seeds", len(seeds)))
	return updated, nil
}

// validateSeeds requires distinct ids of teams registered in t.
func validateSeeds(t *models.Tournament, seeds []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(seeds))
	for _, id := range seeds {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: team %s listed twice", ErrSeedsInvalid, id)
		}
		seen[id] = struct{}{}
		if !t.HasTeam(id) {
			return fmt.Errorf("%w: team %s is not registered", ErrSeedsInvalid, id)
		}
	}
	return nil
}

func (s *tournamentService) UploadBanner(ctx context.Context, id uuid.UUID, currentUserID int, file io.Reader, contentType string) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, err := bannerExtension(contentType)
	if err != nil {
		return nil, err
	}
	t, err := s.ownedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%s/banner-%s%s", id, uuid.New(), ext)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload banner: %w", err)
	}

	background := fmt.Sprintf("url(%s)", uploaded.Location)
	if err := s.repo.UpdateBannerBackground(ctx, id, background); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to delete orphaned banner",
				slog.String("key", key), slog.Any("error", delErr))
		}
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to store banner background: %w", err)
	}
	t.BannerBackground = background

	s.broadcast(id, brackets.MessageBannerUpdated, map[string]interface{}{"banner_background": background})
	return t, nil
}

func bannerExtension(contentType string) (string, error) {
	switch contentType {
	case "image/png":
		return ".png", nil
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidBannerType, contentType)
	}
}

func (s *tournamentService) BracketPreview(ctx context.Context, id uuid.UUID) ([]BracketPreview, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.BracketsByTournamentID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load brackets of tournament %s: %w", id, err)
	}

	seeds := previewSeeds(t)
	previews := make([]BracketPreview, 0, len(list))
	for _, b := range list {
		gen, err := brackets.GeneratorFor(b.Type)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping bracket preview", slog.String("bracket_id", b.ID.String()), slog.Any("error", err))
			continue
		}
		p := BracketPreview{BracketID: b.ID, Type: b.Type, Generator: gen.GetName(), Matches: make([]*brackets.BracketMatch, 0)}
		if len(seeds) >= 2 {
			matches, err := gen.GenerateBracket(ctx, brackets.GenerateBracketParams{TournamentID: id, Seeds: seeds})
			if err != nil {
				return nil, fmt.Errorf("failed to generate %s preview: %w", gen.GetName(), err)
			}
			p.Matches = matches
		}
		previews = append(previews, p)
	}
	return previews, nil
}

// previewSeeds uses the stored seeds, then any unseeded teams in registration order.
func previewSeeds(t *models.Tournament) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(t.Teams))
	seeded := make(map[uuid.UUID]bool, len(t.Seeds))
	for _, id := range t.Seeds {
		if t.HasTeam(id) && !seeded[id] {
			seeded[id] = true
			out = append(out, id)
		}
	}
	for _, team := range t.Teams {
		if !seeded[team.ID] {
			out = append(out, team.ID)
		}
	}
	return out
}

func (s *tournamentService) ownedTournament(ctx context.Context, id uuid.UUID, currentUserID int) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Organizer == nil || t.Organizer.OwnerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return t, nil
}

func (s *tournamentService) broadcast(id uuid.UUID, msgType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	room := brackets.RoomID(id)
	s.broadcaster.BroadcastToRoom(room, brackets.WebSocketMessage{Type: msgType, Payload: payload, RoomID: room})
}
