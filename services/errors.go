package services

import (
	"errors"

	"github.com/ranjitbudhathoki/cricbelbari/repositories"
)

var (
	ErrValidation = repositories.ErrValidation
	ErrTransport  = repositories.ErrTransport

	ErrScreenNotFound = errors.New("screen not found")
	ErrWrongScreen    = errors.New("operation not supported by this screen")
)

const (
	alertTitle = "Error"

	msgRequiredFields  = "Name, Role, and Date of Birth are required fields."
	msgAddPlayerFailed = "Failed to add player."
	msgAddStatsFailed  = "Failed to add Stats."
	msgLoadPlayers     = "Failed to load players."
	msgLoadPlayer      = "Failed to load player details."
	msgPhotoNotImage   = "The selected photo is not an image."
	msgPhotoNotFound   = "The selected photo could not be found."
	msgPhotoTooLarge   = "The selected photo is too large."
	msgNoPhotoLibrary  = "No photo library is configured."
	msgMissingPlayer   = "No player selected."
)
