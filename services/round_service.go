package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
)

type RoundService interface {
	CreateRound(ctx context.Context, input CreateRoundInput) (*models.Round, error)
	ListRounds(ctx context.Context) ([]models.Round, error)
	DeleteRound(ctx context.Context, id int) error
}

type CreateRoundInput struct {
	TournamentID int `json:"tournament_id"`
	RoundNumber  int `json:"round_number"`
}

type roundService struct {
	roundRepo repositories.RoundRepository
	cache     cache.Cache
	logger    *slog.Logger
}

func NewRoundService(roundRepo repositories.RoundRepository, c cache.Cache, logger *slog.Logger) RoundService {
	return &roundService{roundRepo: roundRepo, cache: c, logger: logger}
}

func (s *roundService) CreateRound(ctx context.Context, input CreateRoundInput) (*models.Round, error) {
	if input.TournamentID <= 0 || input.RoundNumber <= 0 {
		return nil, fmt.Errorf("%w: tournament_id and a positive round_number are required", ErrValidationFailed)
	}

	round := &models.Round{TournamentID: input.TournamentID, RoundNumber: input.RoundNumber}
	if err := s.roundRepo.Create(ctx, nil, round); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoundTournamentInvalid):
			return nil, fmt.Errorf("%w: tournament %d", ErrInvalidReference, input.TournamentID)
		case errors.Is(err, repositories.ErrRoundNumberInvalid):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		default:
			return nil, fmt.Errorf("failed to create round: %w", err)
		}
	}

	invalidateCache(ctx, s.cache, s.logger)
	return round, nil
}

func (s *roundService) ListRounds(ctx context.Context) ([]models.Round, error) {
	rounds, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	if rounds == nil {
		return []models.Round{}, nil
	}
	return rounds, nil
}

func (s *roundService) DeleteRound(ctx context.Context, id int) error {
	if err := s.roundRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRoundNotFound):
			return ErrRoundNotFound
		case errors.Is(err, repositories.ErrRoundInUse):
			return ErrRoundInUse
		default:
			return fmt.Errorf("failed to delete round %d: %w", id, err)
		}
	}

	invalidateCache(ctx, s.cache, s.logger)
	return nil
}
