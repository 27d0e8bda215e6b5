package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Dosada05/chess-federation/brackets"
	"github.com/Dosada05/chess-federation/models"
	"github.com/Dosada05/chess-federation/repositories"
	"github.com/Dosada05/chess-federation/storage"
)

var errStorage = errors.New("connection reset")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- object storage ---

type fakeUploader struct {
	mu        sync.Mutex
	objects   map[string]string
	deleted   []string
	uploadErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]string)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// --- cache ---

type fakeCache struct {
	mu            sync.Mutex
	gen           int64
	entries       map[string][]byte
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dst any) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return c.gen, false, nil
	}
	return c.gen, true, json.Unmarshal(data, dst)
}

func (c *fakeCache) SetJSON(ctx context.Context, gen int64, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	c.gen++
	c.invalidations++
	return nil
}

// --- repositories ---

type fakePlayerRepo struct {
	players   map[int]*models.Player
	nextID    int
	inUse     map[int]bool
	history   []brackets.HistoryRow
	createErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[int]*models.Player), inUse: make(map[int]bool)}
}

func (r *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for id := 1; id <= r.nextID; id++ {
		if p, ok := r.players[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, id int, upd repositories.PlayerUpdate) (*models.Player, error) {
	if upd == (repositories.PlayerUpdate{}) {
		return nil, repositories.ErrNoFieldsToUpdate
	}
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Club != nil {
		p.Club = upd.Club
	}
	if upd.Category != nil {
		p.Category = upd.Category
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.Elo != nil {
		p.Elo = upd.Elo
	}
	if upd.FideID != nil {
		p.FideID = upd.FideID
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error {
	if r.inUse[id] {
		return repositories.ErrPlayerInUse
	}
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) ListMatchHistory(ctx context.Context, playerID int) ([]brackets.HistoryRow, error) {
	return r.history, nil
}

type fakeTournamentRepo struct {
	tournaments   map[int]*models.Tournament
	nextID        int
	treeRows      []brackets.TreeRow
	treeRowsCalls int
	maxRound      int
	inUse         map[int]bool
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament), inUse: make(map[int]bool)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.nextID++
	t.ID = r.nextID
	cp := *t
	r.tournaments[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0)
	for id := 1; id <= r.nextID; id++ {
		if t, ok := r.tournaments[id]; ok {
			out = append(out, *t)
		}
	}
	if offset >= len(out) {
		return []models.Tournament{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if r.inUse[id] {
		return repositories.ErrTournamentInUse
	}
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) TreeRows(ctx context.Context, tournamentID *int) ([]brackets.TreeRow, error) {
	r.treeRowsCalls++
	if tournamentID == nil {
		return r.treeRows, nil
	}
	var out []brackets.TreeRow
	for _, row := range r.treeRows {
		if row.TournamentID == *tournamentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) MaxRoundNumber(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	return r.maxRound, nil
}

type fakeStandingRepo struct {
	players []brackets.StandingPlayer
	results []brackets.StandingMatch
	err     error
	// afterResults runs once the results have been read, before they are returned.
	afterResults func()
}

func (r *fakeStandingRepo) ListPlayers(ctx context.Context) ([]brackets.StandingPlayer, error) {
	return r.players, nil
}

func (r *fakeStandingRepo) ListResults(ctx context.Context, tournamentID int) ([]brackets.StandingMatch, error) {
	if r.err != nil {
		return nil, r.err
	}
	results := r.results
	if r.afterResults != nil {
		r.afterResults()
	}
	return results, nil
}

type fakeRoundRepo struct {
	rounds    []models.Round
	createErr error
	deleteErr error
}

func (r *fakeRoundRepo) Create(ctx context.Context, exec repositories.SQLExecutor, round *models.Round) error {
	if r.createErr != nil {
		return r.createErr
	}
	round.ID = len(r.rounds) + 100
	r.rounds = append(r.rounds, *round)
	return nil
}

func (r *fakeRoundRepo) List(ctx context.Context) ([]models.Round, error) {
	return r.rounds, nil
}

func (r *fakeRoundRepo) Delete(ctx context.Context, id int) error {
	return r.deleteErr
}

type fakeMatchRepo struct {
	mu        sync.Mutex
	matches   []models.Match
	createErr error
	deleteErr error
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = len(r.matches) + 1
	r.matches = append(r.matches, *m)
	return nil
}

func (r *fakeMatchRepo) List(ctx context.Context) ([]models.MatchListing, error) {
	return nil, nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	return r.deleteErr
}

type fakeNewsRepo struct {
	posts     map[int]*models.NewsPost
	nextID    int
	createErr error
	lastLimit int
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{posts: make(map[int]*models.NewsPost)}
}

func (r *fakeNewsRepo) Create(ctx context.Context, p *models.NewsPost) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakeNewsRepo) GetByID(ctx context.Context, id int) (*models.NewsPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrNewsNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeNewsRepo) List(ctx context.Context, limit, offset int) ([]models.NewsPost, error) {
	r.lastLimit = limit
	return nil, nil
}

func (r *fakeNewsRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrNewsNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakeEventRepo struct {
	events map[int]*models.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, e *models.Event) error {
	e.ID = len(r.events) + 1
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeEventRepo) List(ctx context.Context) ([]models.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, id int, upd repositories.EventUpdate) (*models.Event, error) {
	if upd == (repositories.EventUpdate{}) {
		return nil, repositories.ErrNoFieldsToUpdate
	}
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeImageRepo struct {
	mu        sync.Mutex
	images    []models.GalleryImage
	failAfter int
	created   int
}

func (r *fakeImageRepo) Create(ctx context.Context, img *models.GalleryImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	if r.failAfter > 0 && r.created > r.failAfter {
		return errStorage
	}
	img.ID = r.created
	r.images = append(r.images, *img)
	return nil
}

func (r *fakeImageRepo) List(ctx context.Context, album *string) ([]models.GalleryImage, error) {
	if album == nil {
		return r.images, nil
	}
	var out []models.GalleryImage
	for _, img := range r.images {
		if img.Album == *album {
			out = append(out, img)
		}
	}
	return out, nil
}

// fakeTransactor runs fn without a real transaction; repositories fall back to their own db.
type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.calls++
	return fn(nil)
}
