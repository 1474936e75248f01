package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/roster"
)

type RosterScreen struct {
	repo     repositories.PlayerRepository
	logger   *slog.Logger
	snapshot Snapshot[[]models.PlayerListEntry]

	mu    sync.Mutex
	query string
}

type RosterRow struct {
	models.PlayerListEntry
	Open *Navigation `json:"open"`
}

type RosterView struct {
	Kind      ScreenKind  `json:"kind"`
	Loading   bool        `json:"loading"`
	Query     string      `json:"query"`
	Players   []RosterRow `json:"players"`
	Total     int         `json:"total"`
	Alert     *Alert      `json:"alert,omitempty"`
	AddPlayer *Navigation `json:"add_player"`
}

func NewRosterScreen(repo repositories.PlayerRepository, logger *slog.Logger) *RosterScreen {
	return &RosterScreen{repo: repo, logger: logger}
}

func (s *RosterScreen) Kind() ScreenKind { return ScreenRoster }

func (s *RosterScreen) Focus(ctx context.Context) {
	seq := s.snapshot.Begin()
	players, err := s.repo.ListPlayers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching players", slog.Any("error", err))
	}
	if !s.snapshot.Resolve(seq, players, err) {
		s.logger.DebugContext(ctx, "discarded stale roster response", slog.Uint64("seq", seq))
	}
}

// Search updates the search box. Filtering happens on View, against the
// last fetched roster.
func (s *RosterScreen) Search(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

func (s *RosterScreen) View() interface{} {
	return s.RosterView()
}

func (s *RosterScreen) RosterView() RosterView {
	s.mu.Lock()
	query := s.query
	s.mu.Unlock()

	state := s.snapshot.State()
	view := RosterView{
		Kind:      ScreenRoster,
		Loading:   state.Loading,
		Query:     query,
		Players:   []RosterRow{},
		Total:     len(state.Value),
		AddPlayer: pushTo("addPlayer", nil),
	}
	if state.Err != nil {
		view.Alert = newAlert(msgLoadPlayers)
	}

	for _, p := range roster.Filter(state.Value, query) {
		view.Players = append(view.Players, RosterRow{
			PlayerListEntry: p,
			Open:            pushTo("/"+p.ID.String(), nil),
		})
	}
	return view
}
