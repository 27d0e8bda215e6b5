package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/chess-federation/cache"
	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
	"github.com/Dosada05/chess-federation/storage"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput, pgn *FileUpload) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.MatchListing, error)
	DeleteMatch(ctx context.Context, id int) error
}

// CreateMatchInput приходит из multipart-формы. Result не проверяется на допустимые значения:
// незнакомый результат просто не приносит очков.
type CreateMatchInput struct {
	RoundID   int
	Player1ID int
	Player2ID int
	Result    string
	Link      *string
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	pgnUploader storage.FileUploader
	cache       cache.Cache
	logger      *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	pgnUploader storage.FileUploader,
	c cache.Cache,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		pgnUploader: pgnUploader,
		cache:       c,
		logger:      logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput, pgn *FileUpload) (*models.Match, error) {
	result := strings.TrimSpace(input.Result)
	if input.RoundID <= 0 || input.Player1ID <= 0 || input.Player2ID <= 0 || result == "" {
		return nil, fmt.Errorf("%w: round_id, player1_id, player2_id and result are required", ErrValidationFailed)
	}

	match := &models.Match{
		RoundID:   input.RoundID,
		Player1ID: input.Player1ID,
		Player2ID: input.Player2ID,
		Result:    result,
		Link:      nonEmpty(input.Link),
	}

	var uploadedKey string
	if pgn != nil && pgn.Reader != nil {
		if pgn.ContentType == "" {
			pgn.ContentType = "application/x-chess-pgn"
		}
		res, err := uploadFile(ctx, s.pgnUploader, storage.FolderMatches, *pgn)
		if err != nil {
			return nil, err
		}
		uploadedKey = res.Key
		match.PGN = &res.Location
	}

	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if uploadedKey != "" {
			discardUpload(ctx, s.pgnUploader, uploadedKey, s.logger)
		}
		if errors.Is(err, repositories.ErrMatchReferenceInvalid) {
			return nil, fmt.Errorf("%w: unknown round or player", ErrInvalidReference)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	invalidateCache(ctx, s.cache, s.logger)
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.MatchListing, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []models.MatchListing{}, nil
	}
	return matches, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}

	invalidateCache(ctx, s.cache, s.logger)
	return nil
}
