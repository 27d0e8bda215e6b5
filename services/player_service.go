package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/chess-federation/brackets"
	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	GetPlayerHistory(ctx context.Context, id int) (*models.PlayerHistory, error)
}

type CreatePlayerInput struct {
	Name     string  `json:"name"`
	Club     *string `json:"club"`
	Category *string `json:"category"`
	Rating   int     `json:"rating"`
	Elo      *string `json:"elo"`
	FideID   *string `json:"id_fide"`
}

type UpdatePlayerInput struct {
	Name     *string `json:"name"`
	Club     *string `json:"club"`
	Category *string `json:"category"`
	Rating   *int    `json:"rating"`
	Elo      *string `json:"elo"`
	FideID   *string `json:"id_fide"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	cache      cache.Cache
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, c cache.Cache, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		cache:      c,
		logger:     logger,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Rating == 0 {
		return nil, fmt.Errorf("%w: name and rating are required", ErrValidationFailed)
	}

	player := &models.Player{
		Name:     name,
		Club:     nonEmpty(input.Club),
		Category: nonEmpty(input.Category),
		Rating:   input.Rating,
		Elo:      nonEmpty(input.Elo),
		FideID:   nonEmpty(input.FideID),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	invalidateCache(ctx, s.cache, s.logger)
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	upd := repositories.PlayerUpdate{
		Name:     nonEmpty(input.Name),
		Club:     nonEmpty(input.Club),
		Category: nonEmpty(input.Category),
		Elo:      nonEmpty(input.Elo),
		FideID:   nonEmpty(input.FideID),
	}
	if input.Rating != nil && *input.Rating != 0 {
		upd.Rating = input.Rating
	}

	player, err := s.playerRepo.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoFieldsToUpdate):
			return nil, ErrNoFieldsToUpdate
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		default:
			return nil, fmt.Errorf("failed to update player %d: %w", id, err)
		}
	}

	invalidateCache(ctx, s.cache, s.logger)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerInUse):
			return ErrPlayerInUse
		default:
			return fmt.Errorf("failed to delete player %d: %w", id, err)
		}
	}

	invalidateCache(ctx, s.cache, s.logger)
	return nil
}

// GetPlayerHistory не проверяет существование игрока: неизвестный id даёт пустую историю.
func (s *playerService) GetPlayerHistory(ctx context.Context, id int) (*models.PlayerHistory, error) {
	rows, err := s.playerRepo.ListMatchHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}
	return brackets.BuildPlayerHistory(id, rows), nil
}
