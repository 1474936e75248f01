package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
)

// AddStatForm records one match for a player.
type AddStatForm struct {
	playerID models.PlayerID
	repo     repositories.PlayerRepository
	logger   *slog.Logger
	recorder Recorder

	mu    sync.Mutex
	entry models.StatEntry
}

type AddStatState struct {
	PlayerID models.PlayerID `json:"playerId"`
	models.StatEntry
}

func (f *AddStatForm) Set(entry models.StatEntry) {
	f.mu.Lock()
	f.entry = entry
	f.mu.Unlock()
}

func (f *AddStatForm) State() AddStatState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return AddStatState{PlayerID: f.playerID, StatEntry: f.entry}
}

// Submit appends the entry. The app goes back to the player only on success.
func (f *AddStatForm) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	entry := f.entry
	f.mu.Unlock()

	if f.playerID == "" {
		f.recorder.ObserveForm("add_stat", "validation_failed")
		return Outcome{Alert: newAlert(msgMissingPlayer), Err: fmt.Errorf("%w: player id is required", ErrValidation)}
	}

	f.logger.InfoContext(ctx, "Player stats submitted", slog.String("player_id", f.playerID.String()), slog.Any("stats", entry))
	if err := f.repo.AddStatEntry(ctx, f.playerID, entry); err != nil {
		f.logger.ErrorContext(ctx, "failed to add stats", slog.String("player_id", f.playerID.String()), slog.Any("error", err))
		f.recorder.ObserveForm("add_stat", "failed")
		return Outcome{Alert: newAlert(msgAddStatsFailed), Err: err}
	}

	f.recorder.ObserveForm("add_stat", "submitted")
	return Outcome{Submitted: true, Navigate: goBack()}
}
