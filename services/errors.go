package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации
	ErrValidationFailed = errors.New("validation failed")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidReference = errors.New("referenced record does not exist")

	// Ошибки, специфичные для сущностей (дают больше контекста, чем ErrNotFound)
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrNewsNotFound       = errors.New("news post not found")
	ErrEventNotFound      = errors.New("event not found")

	// Ошибки конфликтов: удаление запрещено, пока есть зависимые записи
	ErrPlayerInUse     = errors.New("player has recorded matches and cannot be deleted")
	ErrTournamentInUse = errors.New("tournament has rounds and cannot be deleted")
	ErrRoundInUse      = errors.New("round has matches and cannot be deleted")

	// Внешние зависимости
	ErrUploadFailed      = errors.New("failed to upload file")
	ErrEngineUnavailable = errors.New("analysis engine is unavailable")
)
