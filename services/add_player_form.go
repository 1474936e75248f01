package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/storage"
)

const dobLayout = "2006-01-02"

// AddPlayerForm is the state of the add-player screen.
type AddPlayerForm struct {
	repo     repositories.PlayerRepository
	photos   storage.PhotoSource
	logger   *slog.Logger
	recorder Recorder

	mu       sync.Mutex
	player   models.NewPlayer
	photo    *storage.Photo
	photoRef string
	photoErr error
}

// AddPlayerState is what the form echoes back so nothing typed is lost.
type AddPlayerState struct {
	models.NewPlayer
	ProfileRef string `json:"profileRef,omitempty"`
	HasPhoto   bool   `json:"hasPhoto"`
}

func (f *AddPlayerForm) Set(player models.NewPlayer) {
	f.mu.Lock()
	f.player = player
	f.mu.Unlock()
}

// SetDOB stores a date picked from a calendar as YYYY-MM-DD.
func (f *AddPlayerForm) SetDOB(date time.Time) {
	f.mu.Lock()
	f.player.DOB = date.Format(dobLayout)
	f.mu.Unlock()
}

// SetPhoto attaches an uploaded image, replacing any picked reference.
func (f *AddPlayerForm) SetPhoto(photo *storage.Photo) {
	f.mu.Lock()
	f.photo, f.photoRef, f.photoErr = photo, "", nil
	f.mu.Unlock()
}

// Upload attaches raw uploaded bytes. Content that is not an image is
// remembered and reported by Submit.
func (f *AddPlayerForm) Upload(body io.Reader, contentType string) {
	photo, err := storage.NewPhoto(body, contentType)
	if err != nil {
		f.mu.Lock()
		f.photo, f.photoRef, f.photoErr = nil, "", err
		f.mu.Unlock()
		return
	}
	f.SetPhoto(photo)
}

// PickPhoto selects an image from the configured photo library by reference.
func (f *AddPlayerForm) PickPhoto(ref string) {
	f.mu.Lock()
	f.photo, f.photoRef, f.photoErr = nil, ref, nil
	f.mu.Unlock()
}

func (f *AddPlayerForm) State() AddPlayerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return AddPlayerState{
		NewPlayer:  f.player,
		ProfileRef: f.photoRef,
		HasPhoto:   f.photo != nil || f.photoRef != "",
	}
}

// Submit validates the form and creates the player. Required fields are
// checked before anything is sent; on any failure the form keeps its state.
func (f *AddPlayerForm) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	player, photo, ref, photoErr := f.player, f.photo, f.photoRef, f.photoErr
	f.mu.Unlock()

	if missing := player.MissingRequired(); len(missing) > 0 {
		f.recorder.ObserveForm("add_player", "validation_failed")
		return Outcome{
			Alert: newAlert(msgRequiredFields),
			Err:   fmt.Errorf("%w: missing %v", ErrValidation, missing),
		}
	}

	if photoErr != nil {
		f.recorder.ObserveForm("add_player", "validation_failed")
		return Outcome{Alert: newAlert(msgPhotoNotImage), Err: fmt.Errorf("%w: %v", ErrValidation, photoErr)}
	}

	if photo == nil && ref != "" {
		picked, outcome, ok := f.resolvePhoto(ctx, ref)
		if !ok {
			f.recorder.ObserveForm("add_player", "validation_failed")
			return outcome
		}
		defer picked.Close()
		photo = picked
	}

	created, err := f.repo.CreatePlayer(ctx, player, photo)
	if errors.Is(err, storage.ErrPhotoTooLarge) {
		f.recorder.ObserveForm("add_player", "validation_failed")
		return Outcome{Alert: newAlert(msgPhotoTooLarge), Err: err}
	}
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to add player", slog.String("name", player.Name), slog.Any("error", err))
		f.recorder.ObserveForm("add_player", "failed")
		return Outcome{Alert: newAlert(msgAddPlayerFailed), Err: err}
	}

	f.logger.InfoContext(ctx, "player added", slog.String("name", player.Name), slog.String("player_id", created.ID.String()))
	f.recorder.ObserveForm("add_player", "submitted")
	return Outcome{Submitted: true, Navigate: pushTo("/", nil)}
}

func (f *AddPlayerForm) resolvePhoto(ctx context.Context, ref string) (*storage.Photo, Outcome, bool) {
	if f.photos == nil {
		return nil, Outcome{
			Alert: newAlert(msgNoPhotoLibrary),
			Err:   fmt.Errorf("%w: no photo source configured", ErrValidation),
		}, false
	}

	photo, err := f.photos.Open(ctx, ref)
	switch {
	case err == nil:
		return photo, Outcome{}, true
	case errors.Is(err, storage.ErrNotAnImage):
		return nil, Outcome{Alert: newAlert(msgPhotoNotImage), Err: fmt.Errorf("%w: %v", ErrValidation, err)}, false
	case errors.Is(err, storage.ErrPhotoNotFound), errors.Is(err, storage.ErrInvalidRef):
		return nil, Outcome{Alert: newAlert(msgPhotoNotFound), Err: fmt.Errorf("%w: %v", ErrValidation, err)}, false
	default:
		f.logger.ErrorContext(ctx, "Error picking image", slog.String("ref", ref), slog.Any("error", err))
		return nil, Outcome{Alert: newAlert(msgAddPlayerFailed), Err: err}, false
	}
}
