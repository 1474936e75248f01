package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxPhotoBytes is the largest profile photo forwarded to the roster API.
const MaxPhotoBytes = 10 << 20

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrNotAnImage    = errors.New("photo is not an image")
	ErrInvalidRef    = errors.New("invalid photo reference")
	ErrPhotoTooLarge = errors.New("photo is too large")
)

// Photo is an image picked for a new player's profile.
type Photo struct {
	Filename    string
	ContentType string
	Body        io.Reader
	closer      io.Closer
}

func (p *Photo) Close() error {
	if p == nil || p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// PhotoSource resolves a photo reference chosen by the user.
type PhotoSource interface {
	Open(ctx context.Context, ref string) (*Photo, error)
}

// NewPhoto wraps an uploaded image. The first bytes are always sniffed: an
// empty content type takes the sniffed one, and a declared type must agree
// with it unless the format is one the sniffer does not know.
func NewPhoto(body io.Reader, contentType string) (*Photo, error) {
	br := bufio.NewReaderSize(body, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	sniffed := mediaType(http.DetectContentType(head))

	contentType = mediaType(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniffed
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}
	if sniffed != "application/octet-stream" && sniffed != normalizeImageType(contentType) {
		return nil, fmt.Errorf("%w: declared %s but content is %s", ErrNotAnImage, contentType, sniffed)
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	photo := &Photo{
		Filename:    "profile" + ext,
		ContentType: contentType,
		Body:        br,
	}
	if c, ok := body.(io.Closer); ok {
		photo.closer = c
	}
	return photo, nil
}

func mediaType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
}

func normalizeImageType(contentType string) string {
	if contentType == "image/jpg" {
		return "image/jpeg"
	}
	return contentType
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			// "image/svg+xml" -> ".svg"
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: '%s'", contentType)
	}
}
