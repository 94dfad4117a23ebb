package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-portal/models"
	"github.com/Dosada05/tournament-portal/repositories"
	"github.com/Dosada05/tournament-portal/utils"
	"github.com/go-playground/validator/v10"
)

// CountryLookup resolves a stored country code to its display record.
type CountryLookup interface {
	Lookup(code string) (models.Country, bool)
}

type UserPageParams struct {
	Identifier string `validate:"required"`
	// ViewerID is the signed-in user, if any.
	ViewerID *int `validate:"-"`
}

type UserPage struct {
	Data  models.UserPageData `json:"user"`
	Title string              `json:"title"`
	Nav   []models.NavLink    `json:"nav"`
}

// UserPageLoader loads the user profile layout.
type UserPageLoader interface {
	Load(ctx context.Context, params UserPageParams) (*UserPage, error)
}

type userPageLoader struct {
	userRepo  repositories.UserRepository
	badgeRepo repositories.BadgeRepository
	countries CountryLookup
	siteName  string
	validate  *validator.Validate
}

func NewUserPageLoader(
	userRepo repositories.UserRepository,
	badgeRepo repositories.BadgeRepository,
	countries CountryLookup,
	siteName string,
) UserPageLoader {
	return &userPageLoader{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		countries: countries,
		siteName:  siteName,
		validate:  validator.New(),
	}
}

func (l *userPageLoader) Load(ctx context.Context, params UserPageParams) (*UserPage, error) {
	if err := l.validate.StructCtx(ctx, params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	user, err := l.userRepo.FindByIdentifier(ctx, params.Identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %q: %w", params.Identifier, err)
	}

	badges, err := l.badgeRepo.CountsByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count badges for user %d: %w", user.ID, err)
	}

	data := models.UserPageData{
		ID:                   user.ID,
		DiscordName:          user.DiscordName,
		DiscordAvatar:        user.DiscordAvatar,
		DiscordDiscriminator: user.DiscordDiscriminator,
		DiscordID:            user.DiscordID,
		YoutubeID:            user.YoutubeID,
		Twitch:               user.Twitch,
		Twitter:              user.Twitter,
		Bio:                  user.Bio,
		Country:              l.country(user.Country),
		Badges:               badges,
	}

	return &UserPage{
		Data:  data,
		Title: utils.MakeTitle(l.siteName, utils.DiscordFullName(user.DiscordName, user.DiscordDiscriminator)),
		Nav:   userNav(data.ID, params.ViewerID),
	}, nil
}

// country keeps the stored code and takes name and emoji from the table.
func (l *userPageLoader) country(code *string) *models.Country {
	if code == nil || *code == "" || l.countries == nil {
		return nil
	}
	c, ok := l.countries.Lookup(*code)
	if !ok {
		return nil
	}
	return &models.Country{Code: *code, Name: c.Name, Emoji: c.Emoji}
}

func userNav(pageUserID int, viewerID *int) []models.NavLink {
	nav := []models.NavLink{{Label: "Profile", To: ""}}
	if viewerID != nil && *viewerID == pageUserID {
		nav = append(nav, models.NavLink{Label: "Edit", To: "edit"})
	}
	return nav
}
