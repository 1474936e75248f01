package handlers

import (
	"net/http"

	"github.com/ranjitbudhathoki/cricbelbari/services"
)

type ScreenHandler struct {
	screenService *services.ScreenService
}

func NewScreenHandler(s *services.ScreenService) *ScreenHandler {
	return &ScreenHandler{screenService: s}
}

type searchInput struct {
	Query string `json:"query"`
}

func (h *ScreenHandler) OpenRoster(w http.ResponseWriter, r *http.Request) {
	opened := h.screenService.OpenRoster(r.Context())

	err := writeJSON(w, http.StatusCreated, jsonResponse{"screen": opened}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScreenHandler) OpenPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getPlayerIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opened, err := h.screenService.OpenPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"screen": opened}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScreenHandler) GetScreen(w http.ResponseWriter, r *http.Request) {
	screenID, err := getScreenIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opened, err := h.screenService.View(screenID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"screen": opened}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Focus refetches the data of a screen the app navigated back to.
func (h *ScreenHandler) Focus(w http.ResponseWriter, r *http.Request) {
	screenID, err := getScreenIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opened, err := h.screenService.Focus(r.Context(), screenID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"screen": opened}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScreenHandler) Search(w http.ResponseWriter, r *http.Request) {
	screenID, err := getScreenIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input searchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	opened, err := h.screenService.Search(screenID, input.Query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"screen": opened}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScreenHandler) CloseScreen(w http.ResponseWriter, r *http.Request) {
	screenID, err := getScreenIDFromURL(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.screenService.Close(screenID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
