package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed  = errors.New("validation failed")
	ErrSeedsInvalid      = errors.New("seeds must be distinct teams registered in the tournament")
	ErrInvalidBannerType = errors.New("banner must be a png, jpeg or webp image")
	ErrUploadsDisabled   = errors.New("file uploads are not configured")

	// Ошибки аутентификации и авторизации
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)
