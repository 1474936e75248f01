package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/storage"
)

// OpenedScreen is returned when a screen is opened or refocused.
type OpenedScreen struct {
	ScreenID string      `json:"screen_id"`
	View     interface{} `json:"view"`
}

// ScreenService opens screens and builds forms against the roster API.
type ScreenService struct {
	repo     repositories.PlayerRepository
	photos   storage.PhotoSource
	manager  *ScreenManager
	recorder Recorder
	logger   *slog.Logger
}

// NewScreenService wires the screens. photos and recorder may be nil.
func NewScreenService(repo repositories.PlayerRepository, photos storage.PhotoSource, recorder Recorder, logger *slog.Logger, limits ScreenLimits) *ScreenService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenService{
		repo:     repo,
		photos:   photos,
		manager:  NewScreenManager(recorder, limits),
		recorder: recorder,
		logger:   logger,
	}
}

func (s *ScreenService) Screens() *ScreenManager { return s.manager }

// OpenRoster opens the home screen and fetches the roster.
func (s *ScreenService) OpenRoster(ctx context.Context) OpenedScreen {
	screen := NewRosterScreen(s.repo, s.logger)
	id := s.manager.Open(screen)
	screen.Focus(ctx)
	return OpenedScreen{ScreenID: id, View: screen.View()}
}

// OpenPlayer opens the detail screen of one player and fetches it.
func (s *ScreenService) OpenPlayer(ctx context.Context, id models.PlayerID) (OpenedScreen, error) {
	if id == "" {
		return OpenedScreen{}, fmt.Errorf("%w: player id is required", ErrValidation)
	}
	screen := NewPlayerScreen(id, s.repo, s.logger)
	screenID := s.manager.Open(screen)
	screen.Focus(ctx)
	return OpenedScreen{ScreenID: screenID, View: screen.View()}, nil
}

// Focus refetches a screen, as when the user navigates back to it.
func (s *ScreenService) Focus(ctx context.Context, screenID string) (OpenedScreen, error) {
	screen, err := s.manager.Get(screenID)
	if err != nil {
		return OpenedScreen{}, err
	}
	screen.Focus(ctx)
	return OpenedScreen{ScreenID: screenID, View: screen.View()}, nil
}

func (s *ScreenService) View(screenID string) (OpenedScreen, error) {
	screen, err := s.manager.Get(screenID)
	if err != nil {
		return OpenedScreen{}, err
	}
	return OpenedScreen{ScreenID: screenID, View: screen.View()}, nil
}

// Search sets the query of a roster screen.
func (s *ScreenService) Search(screenID, query string) (OpenedScreen, error) {
	screen, err := s.manager.Get(screenID)
	if err != nil {
		return OpenedScreen{}, err
	}
	rs, ok := screen.(*RosterScreen)
	if !ok {
		return OpenedScreen{}, fmt.Errorf("%w: search on %s screen", ErrWrongScreen, screen.Kind())
	}
	rs.Search(query)
	return OpenedScreen{ScreenID: screenID, View: rs.View()}, nil
}

func (s *ScreenService) Close(screenID string) error {
	return s.manager.Close(screenID)
}

func (s *ScreenService) NewAddPlayerForm() *AddPlayerForm {
	return &AddPlayerForm{
		repo:     s.repo,
		photos:   s.photos,
		logger:   s.logger,
		recorder: s.recorder,
	}
}

func (s *ScreenService) NewAddStatForm(playerID models.PlayerID) *AddStatForm {
	return &AddStatForm{
		playerID: playerID,
		repo:     s.repo,
		logger:   s.logger,
		recorder: s.recorder,
	}
}
