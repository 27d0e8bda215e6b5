package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/chess-federation/brackets"
	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
)

const (
	dateLayout             = "2006-01-02"
	defaultTournamentLimit = 20
	maxTournamentLimit     = 100

	cacheKeyAllTrees = "tournaments:all"
)

var ErrTournamentInvalidDateRange = errors.New("tournament end date must not be before start date")

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	ListTournaments(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	GetTournamentTree(ctx context.Context, id int) (*models.TournamentTree, error)
	ListTournamentTrees(ctx context.Context) ([]*models.TournamentTree, error)
	DeleteTournament(ctx context.Context, id int) error
	GetStandings(ctx context.Context, id int) ([]models.Standing, error)
	GeneratePairings(ctx context.Context, id int, input GeneratePairingsInput) ([]models.Round, error)
}

type CreateTournamentInput struct {
	Name      string  `json:"name"`
	Mode      string  `json:"mode"`
	Location  string  `json:"location"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type GeneratePairingsInput struct {
	PlayerIDs []int `json:"player_ids"`
	Double    bool  `json:"double"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	standingRepo   repositories.StandingRepository
	roundRepo      repositories.RoundRepository
	matchRepo      repositories.MatchRepository
	tx             repositories.Transactor
	generator      brackets.PairingGenerator
	cache          cache.Cache
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	standingRepo repositories.StandingRepository,
	roundRepo repositories.RoundRepository,
	matchRepo repositories.MatchRepository,
	tx repositories.Transactor,
	generator brackets.PairingGenerator,
	c cache.Cache,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		standingRepo:   standingRepo,
		roundRepo:      roundRepo,
		matchRepo:      matchRepo,
		tx:             tx,
		generator:      generator,
		cache:          c,
		logger:         logger,
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", ErrValidationFailed, field)
	}
	return t, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if err := requireFields(map[string]string{
		"name":       input.Name,
		"mode":       input.Mode,
		"location":   input.Location,
		"start_date": input.StartDate,
	}); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if endStr := nonEmpty(input.EndDate); endStr != nil {
		e, err := parseDate("end_date", *endStr)
		if err != nil {
			return nil, err
		}
		if e.Before(start) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrTournamentInvalidDateRange)
		}
		end = &e
	}

	mode := strings.TrimSpace(input.Mode)
	tournament := &models.Tournament{
		Name:      strings.TrimSpace(input.Name),
		Mode:      &mode,
		Location:  strings.TrimSpace(input.Location),
		StartDate: start,
		EndDate:   end,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	invalidateCache(ctx, s.cache, s.logger)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	if limit <= 0 {
		limit = defaultTournamentLimit
	}
	if limit > maxTournamentLimit {
		limit = maxTournamentLimit
	}
	if offset < 0 {
		offset = 0
	}

	tournaments, err := s.tournamentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournamentTree(ctx context.Context, id int) (*models.TournamentTree, error) {
	key := "tournament:" + strconv.Itoa(id)
	var cached models.TournamentTree
	gen, found := s.readCache(ctx, key, &cached)
	if found {
		return &cached, nil
	}

	rows, err := s.tournamentRepo.TreeRows(ctx, &id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}
	trees := brackets.BuildTournamentTree(rows)
	if len(trees) == 0 {
		return nil, ErrTournamentNotFound
	}

	s.writeCache(ctx, gen, key, trees[0])
	return trees[0], nil
}

func (s *tournamentService) ListTournamentTrees(ctx context.Context) ([]*models.TournamentTree, error) {
	var cached []*models.TournamentTree
	gen, found := s.readCache(ctx, cacheKeyAllTrees, &cached)
	if found && cached != nil {
		return cached, nil
	}

	rows, err := s.tournamentRepo.TreeRows(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments: %w", err)
	}
	trees := brackets.BuildTournamentTree(rows)
	if trees == nil {
		trees = []*models.TournamentTree{}
	}

	s.writeCache(ctx, gen, cacheKeyAllTrees, trees)
	return trees, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentInUse):
			return ErrTournamentInUse
		default:
			return fmt.Errorf("failed to delete tournament %d: %w", id, err)
		}
	}

	invalidateCache(ctx, s.cache, s.logger)
	return nil
}

// GetStandings считает очки всех игроков федерации в турнире. Несуществующий турнир
// или турнир без партий даёт всех игроков с нулём очков.
func (s *tournamentService) GetStandings(ctx context.Context, id int) ([]models.Standing, error) {
	key := "standings:" + strconv.Itoa(id)
	var cached []models.Standing
	gen, found := s.readCache(ctx, key, &cached)
	if found && cached != nil {
		return cached, nil
	}

	var (
		players []brackets.StandingPlayer
		results []brackets.StandingMatch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.standingRepo.ListPlayers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.standingRepo.ListResults(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute standings for tournament %d: %w", id, err)
	}

	standings := brackets.ComputeStandings(players, results)
	s.writeCache(ctx, gen, key, standings)
	return standings, nil
}

// GeneratePairings создаёт туры и партии круговой системы одной транзакцией.
// Нумерация туров продолжает уже существующие туры турнира.
func (s *tournamentService) GeneratePairings(ctx context.Context, id int, input GeneratePairingsInput) ([]models.Round, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	var created []models.Round
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		last, err := s.tournamentRepo.MaxRoundNumber(ctx, exec, id)
		if err != nil {
			return fmt.Errorf("failed to get last round number: %w", err)
		}

		paired, err := s.generator.GeneratePairings(ctx, brackets.GeneratePairingsParams{
			PlayerIDs:        input.PlayerIDs,
			Double:           input.Double,
			FirstRoundNumber: last + 1,
		})
		if err != nil {
			return err
		}

		created = make([]models.Round, 0, len(paired))
		for _, pr := range paired {
			round := models.Round{TournamentID: id, RoundNumber: pr.Number}
			if err := s.roundRepo.Create(ctx, exec, &round); err != nil {
				return fmt.Errorf("failed to create round %d: %w", pr.Number, err)
			}
			round.Matches = make([]models.Match, 0, len(pr.Pairings))
			for _, p := range pr.Pairings {
				match := models.Match{RoundID: round.ID, Player1ID: p.WhiteID, Player2ID: p.BlackID}
				if err := s.matchRepo.Create(ctx, exec, &match); err != nil {
					return fmt.Errorf("failed to create match in round %d: %w", pr.Number, err)
				}
				round.Matches = append(round.Matches, match)
			}
			created = append(created, round)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrNotEnoughPlayers),
			errors.Is(err, brackets.ErrInvalidPlayerID),
			errors.Is(err, brackets.ErrDuplicatePlayer):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		case errors.Is(err, repositories.ErrMatchReferenceInvalid):
			return nil, fmt.Errorf("%w: unknown player id", ErrInvalidReference)
		default:
			return nil, fmt.Errorf("failed to generate %s pairings: %w", s.generator.GetName(), err)
		}
	}

	s.logger.InfoContext(ctx, "pairings generated",
		slog.Int("tournament_id", id),
		slog.String("system", s.generator.GetName()),
		slog.Int("rounds", len(created)))

	invalidateCache(ctx, s.cache, s.logger)
	return created, nil
}

// readCache возвращает поколение кэша, в котором искали; -1 если кэш недоступен.
func (s *tournamentService) readCache(ctx context.Context, key string, dst any) (int64, bool) {
	gen, found, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		return -1, false
	}
	return gen, found
}

func (s *tournamentService) writeCache(ctx context.Context, gen int64, key string, value any) {
	if gen < 0 {
		return
	}
	if err := s.cache.SetJSON(ctx, gen, key, value); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
