package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/services"
)

const maxUploadBytes = 32 << 20

type FormHandler struct {
	screenService *services.ScreenService
}

func NewFormHandler(s *services.ScreenService) *FormHandler {
	return &FormHandler{screenService: s}
}

// AddPlayer handles the add-player form posted as multipart/form-data. The
// photo is either a "profile" file or a "profile_ref" into the photo library.
func (h *FormHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := h.screenService.NewAddPlayerForm()
	form.Set(models.NewPlayer{
		Name:         r.FormValue("name"),
		Role:         r.FormValue("role"),
		DOB:          r.FormValue("dob"),
		BattingStyle: r.FormValue("battingStyle"),
		BowlingStyle: r.FormValue("bowlingStyle"),
	})

	file, header, err := r.FormFile("profile")
	switch {
	case err == nil:
		defer file.Close()
		form.Upload(file, header.Header.Get("Content-Type"))
	case errors.Is(err, http.ErrMissingFile):
		if ref := strings.TrimSpace(r.FormValue("profile_ref")); ref != "" {
			form.PickPhoto(ref)
		}
	default:
		badRequestResponse(w, r, fmt.Errorf("failed to get profile file from form: %w", err))
		return
	}

	out := form.Submit(r.Context())
	response := jsonResponse{
		"outcome": out,
		"form":    form.State(),
	}

	if err := writeJSON(w, outcomeStatus(out, http.StatusCreated), response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddStat handles one match entry for a player, posted as JSON.
func (h *FormHandler) AddStat(w http.ResponseWriter, r *http.Request) {
	playerID, err := getPlayerIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input models.StatEntry
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	form := h.screenService.NewAddStatForm(playerID)
	form.Set(input)

	out := form.Submit(r.Context())
	response := jsonResponse{
		"outcome": out,
		"form":    form.State(),
	}

	if err := writeJSON(w, outcomeStatus(out, http.StatusOK), response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
