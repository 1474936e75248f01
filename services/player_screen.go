package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/stats"
)

// Country is printed under every player's name; the team only fields Nepali players.
const Country = "Nepal"

type PlayerScreen struct {
	id       models.PlayerID
	repo     repositories.PlayerRepository
	logger   *slog.Logger
	snapshot Snapshot[*models.Player]
}

type ProfileHeader struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	Country string `json:"country"`
}

type StatRow struct {
	Icon  string `json:"icon,omitempty"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Tab struct {
	Key   string    `json:"key"`
	Title string    `json:"title"`
	Rows  []StatRow `json:"rows"`
}

type PlayerView struct {
	Kind     ScreenKind      `json:"kind"`
	PlayerID models.PlayerID `json:"player_id"`
	Loading  bool            `json:"loading"`
	Header   *ProfileHeader  `json:"header,omitempty"`
	Tabs     []Tab           `json:"tabs"`
	Alert    *Alert          `json:"alert,omitempty"`
	AddStat  *Navigation     `json:"add_stat"`
}

func NewPlayerScreen(id models.PlayerID, repo repositories.PlayerRepository, logger *slog.Logger) *PlayerScreen {
	return &PlayerScreen{id: id, repo: repo, logger: logger}
}

func (s *PlayerScreen) Kind() ScreenKind { return ScreenPlayer }

func (s *PlayerScreen) PlayerID() models.PlayerID { return s.id }

func (s *PlayerScreen) Focus(ctx context.Context) {
	seq := s.snapshot.Begin()
	player, err := s.repo.GetPlayer(ctx, s.id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error fetching player data", slog.String("player_id", s.id.String()), slog.Any("error", err))
	}
	if !s.snapshot.Resolve(seq, player, err) {
		s.logger.DebugContext(ctx, "discarded stale player response", slog.Uint64("seq", seq))
	}
}

func (s *PlayerScreen) View() interface{} {
	return s.PlayerView()
}

func (s *PlayerScreen) PlayerView() PlayerView {
	state := s.snapshot.State()

	view := BuildPlayerView(state.Value)
	view.PlayerID = s.id
	view.Loading = state.Loading
	view.AddStat = pushTo("addStat", map[string]string{"playerId": s.id.String()})
	if state.Err != nil {
		view.Alert = newAlert(msgLoadPlayer)
	}
	return view
}

// BuildPlayerView derives the three tabs of the detail screen. A nil
// player yields a view without tabs.
func BuildPlayerView(p *models.Player) PlayerView {
	view := PlayerView{Kind: ScreenPlayer, Tabs: []Tab{}}
	if p == nil {
		return view
	}

	view.PlayerID = p.ID
	view.Header = &ProfileHeader{Name: p.Name, Image: p.Profile, Country: Country}
	view.Tabs = []Tab{
		{
			Key:   "profile",
			Title: "Profile",
			Rows: []StatRow{
				{Label: "Born", Value: fmt.Sprintf("%s (%d years)", p.DOB, p.Age)},
				{Label: "Role", Value: p.Role},
				{Label: "Batting Style", Value: p.BattingStyle},
				{Label: "Bowling Style", Value: p.BowlingStyle},
			},
		},
		{
			Key:   "batting",
			Title: "Batting",
			Rows: []StatRow{
				{Icon: "calendar-outline", Label: "Matches", Value: stats.Display(p.BatMatches)},
				{Icon: "tennisball-outline", Label: "Innings", Value: stats.FormatOptionalCount(p.BatInnings, stats.NotApplicableMarker)},
				{Icon: "stats-chart-outline", Label: "Total Runs", Value: stats.Display(p.Runs)},
				{Icon: "trending-up-outline", Label: "Highest Score", Value: stats.FormatOptionalCount(p.HighScore, stats.NotApplicableMarker)},
				{Icon: "trending-down-outline", Label: "Not Outs", Value: stats.FormatOptionalCount(p.NotOuts, "0")},
				{Icon: "calculator-outline", Label: "Average", Value: stats.FormatAverage(p.Average)},
				{Icon: "flash-outline", Label: "Strike Rate", Value: stats.FormatStrikeRate(p.StrikeRate)},
			},
		},
		{
			Key:   "bowling",
			Title: "Bowling",
			Rows: []StatRow{
				{Icon: "calendar-outline", Label: "Matches", Value: stats.Display(p.BowlMatches)},
				{Icon: "tennisball-outline", Label: "Innings", Value: stats.Display(p.BowlInnings)},
				{Icon: "flag-outline", Label: "Wickets", Value: stats.Display(p.Wickets)},
				{Icon: "timer-outline", Label: "Overs", Value: stats.Display(p.Overs)},
				{Icon: "trending-down-outline", Label: "Runs Conceded", Value: stats.FormatOptionalCount(p.RunsConceded, "0")},
				{Icon: "trending-down-outline", Label: "Economy", Value: stats.FormatEconomy(p.Economy)},
				{Icon: "trophy-outline", Label: "Best Bowling", Value: stats.Display(p.BestBowling)},
			},
		},
	}
	return view
}
