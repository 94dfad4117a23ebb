package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-portal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	// FindByIdentifier matches a discord id or a custom URL (case-insensitive).
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
}

type postgresUserRepository struct {
	db SQLExecutor
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `
	id, discord_id, discord_name, discord_discriminator, discord_avatar,
	youtube_id, twitch, twitter, bio, country, custom_url`

func (r *postgresUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE discord_id = $1 OR lower(custom_url) = lower($1)
		ORDER BY (discord_id = $1) DESC
		LIMIT 1`
	return r.scanUser(ctx, query, identifier)
}

// scanUser - вспомогательный метод для сканирования одного пользователя
func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.DiscordID,
		&user.DiscordName,
		&user.DiscordDiscriminator,
		&user.DiscordAvatar,
		&user.YoutubeID,
		&user.Twitch,
		&user.Twitter,
		&user.Bio,
		&user.Country,
		&user.CustomURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
