package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/storage"
)

// MockRepository implements repositories.PlayerRepository for testing.
type MockRepository struct {
	mu sync.Mutex

	players []models.PlayerListEntry
	details map[models.PlayerID]*models.Player
	err     error

	// listHook, when set, runs inside ListPlayers before it returns.
	listHook func(call int)

	listCalls   int
	getCalls    int
	created     []models.NewPlayer
	createdWith []*storage.Photo
	entries     []models.StatEntry
}

func (m *MockRepository) ListPlayers(ctx context.Context) ([]models.PlayerListEntry, error) {
	m.mu.Lock()
	m.listCalls++
	call, hook, players, err := m.listCalls, m.listHook, m.players, m.err
	m.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (m *MockRepository) GetPlayer(ctx context.Context, id models.PlayerID) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.details[id]
	if !ok {
		return nil, &repositories.TransportError{Op: "get player", StatusCode: 404}
	}
	return p, nil
}

func (m *MockRepository) CreatePlayer(ctx context.Context, player models.NewPlayer, photo *storage.Photo) (*models.PlayerRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, player)
	m.createdWith = append(m.createdWith, photo)
	if m.err != nil {
		return nil, m.err
	}
	return &models.PlayerRef{ID: "99"}, nil
}

func (m *MockRepository) AddStatEntry(ctx context.Context, id models.PlayerID, entry models.StatEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *MockRepository) calls() (list, get, create, add int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.getCalls, len(m.created), len(m.entries)
}

const (
	pngData  = "\x89PNG\r\n\x1a\npng-bytes"
	jpegData = "\xff\xd8\xff\xe0\x00\x10JFIFjpeg-bytes"
)

type mockPhotoSource struct {
	photos map[string]string
	err    error
}

func (s *mockPhotoSource) Open(ctx context.Context, ref string) (*storage.Photo, error) {
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.photos[ref]
	if !ok {
		return nil, storage.ErrPhotoNotFound
	}
	return storage.NewPhoto(strings.NewReader(data), "image/png")
}

type mockRecorder struct {
	mu      sync.Mutex
	screens int
	forms   map[string]int
}

func (r *mockRecorder) SetOpenScreens(count int) {
	r.mu.Lock()
	r.screens = count
	r.mu.Unlock()
}

func (r *mockRecorder) ObserveForm(form, outcome string) {
	r.mu.Lock()
	if r.forms == nil {
		r.forms = make(map[string]int)
	}
	r.forms[form+"/"+outcome]++
	r.mu.Unlock()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
