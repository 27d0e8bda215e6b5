package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
)

type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int) error
}

type CreateEventInput struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Type        *string `json:"type"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
}

type UpdateEventInput struct {
	Title       *string `json:"title"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

type eventService struct {
	eventRepo repositories.EventRepository
	logger    *slog.Logger
}

func NewEventService(eventRepo repositories.EventRepository, logger *slog.Logger) EventService {
	return &eventService{eventRepo: eventRepo, logger: logger}
}

func (s *eventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	if err := requireFields(map[string]string{
		"title":       input.Title,
		"location":    input.Location,
		"description": input.Description,
		"date":        input.Date,
		"time":        input.Time,
	}); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Location:    strings.TrimSpace(input.Location),
		Description: input.Description,
		Type:        nonEmpty(input.Type),
		Date:        strings.TrimSpace(input.Date),
		Time:        strings.TrimSpace(input.Time),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", slog.Int("event_id", event.ID), slog.String("date", event.Date))
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		return []models.Event{}, nil
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int, input UpdateEventInput) (*models.Event, error) {
	event, err := s.eventRepo.Update(ctx, id, repositories.EventUpdate{
		Title:       nonEmpty(input.Title),
		Location:    nonEmpty(input.Location),
		Description: nonEmpty(input.Description),
		Type:        nonEmpty(input.Type),
		Date:        nonEmpty(input.Date),
		Time:        nonEmpty(input.Time),
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoFieldsToUpdate):
			return nil, ErrNoFieldsToUpdate
		case errors.Is(err, repositories.ErrEventNotFound):
			return nil, ErrEventNotFound
		default:
			return nil, fmt.Errorf("failed to update event %d: %w", id, err)
		}
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "event deleted", slog.Int("event_id", id))
	return nil
}
