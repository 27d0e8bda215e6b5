package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/services"
)

type fakePlayerService struct {
	services.PlayerService
	createFn  func(services.CreatePlayerInput) (*models.Player, error)
	getFn     func(int) (*models.Player, error)
	deleteFn  func(int) error
	historyFn func(int) (*models.PlayerHistory, error)
}

func (f *fakePlayerService) CreatePlayer(ctx context.Context, in services.CreatePlayerInput) (*models.Player, error) {
	return f.createFn(in)
}

func (f *fakePlayerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	return f.getFn(id)
}

func (f *fakePlayerService) DeletePlayer(ctx context.Context, id int) error {
	return f.deleteFn(id)
}

func (f *fakePlayerService) GetPlayerHistory(ctx context.Context, id int) (*models.PlayerHistory, error) {
	return f.historyFn(id)
}

type fakeTournamentService struct {
	services.TournamentService
	trees     []*models.TournamentTree
	standings []models.Standing
	listLimit int
	listOff   int
	err       error
}

func (f *fakeTournamentService) ListTournaments(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	f.listLimit, f.listOff = limit, offset
	return []models.Tournament{}, f.err
}

func (f *fakeTournamentService) ListTournamentTrees(ctx context.Context) ([]*models.TournamentTree, error) {
	return f.trees, f.err
}

func (f *fakeTournamentService) GetStandings(ctx context.Context, id int) ([]models.Standing, error) {
	return f.standings, f.err
}

type fakeMatchService struct {
	services.MatchService
	gotInput services.CreateMatchInput
	gotPGN   string
	gotName  string
	hadPGN   bool
}

func (f *fakeMatchService) CreateMatch(ctx context.Context, in services.CreateMatchInput, pgn *services.FileUpload) (*models.Match, error) {
	f.gotInput = in
	if pgn != nil {
		f.hadPGN = true
		f.gotName = pgn.FileName
		data, err := io.ReadAll(pgn.Reader)
		if err != nil {
			return nil, err
		}
		f.gotPGN = string(data)
	}
	return &models.Match{ID: 1, RoundID: in.RoundID, Player1ID: in.Player1ID, Player2ID: in.Player2ID, Result: in.Result}, nil
}

type fakeNewsService struct {
	services.NewsService
	gotOffset, gotLimit int
}

func (f *fakeNewsService) ListNews(ctx context.Context, offset, limit int) ([]models.NewsPost, error) {
	f.gotOffset, f.gotLimit = offset, limit
	return []models.NewsPost{}, nil
}

type fakeGalleryService struct {
	services.GalleryService
	gotInput services.UploadImagesInput
	gotFiles []string
}

func (f *fakeGalleryService) UploadImages(ctx context.Context, in services.UploadImagesInput, files []services.FileUpload) ([]models.GalleryImage, error) {
	f.gotInput = in
	out := make([]models.GalleryImage, 0, len(files))
	for i, file := range files {
		f.gotFiles = append(f.gotFiles, file.FileName+"|"+file.ContentType)
		out = append(out, models.GalleryImage{ID: i + 1, Title: in.Title, Album: in.Album, URL: "https://cdn.test/" + file.FileName})
	}
	return out, nil
}

type fakeAnalysisService struct {
	services.AnalysisService
	answer json.RawMessage
	err    error
}

func (f *fakeAnalysisService) Analyze(ctx context.Context, in services.AnalyzeInput) (json.RawMessage, error) {
	return f.answer, f.err
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}
