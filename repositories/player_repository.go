package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/storage"
)

// PlayerRepository is the roster API as seen by the screens. Every call is
// a single attempt; nothing is retried.
type PlayerRepository interface {
	ListPlayers(ctx context.Context) ([]models.PlayerListEntry, error)
	GetPlayer(ctx context.Context, id models.PlayerID) (*models.Player, error)
	CreatePlayer(ctx context.Context, player models.NewPlayer, photo *storage.Photo) (*models.PlayerRef, error)
	AddStatEntry(ctx context.Context, id models.PlayerID, entry models.StatEntry) error
}

type HTTPPlayerRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPPlayerRepository talks to the roster API at baseURL. Timeouts are
// whatever httpClient is configured with.
func NewHTTPPlayerRepository(baseURL string, httpClient *http.Client, logger *slog.Logger) *HTTPPlayerRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPPlayerRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (r *HTTPPlayerRepository) ListPlayers(ctx context.Context) ([]models.PlayerListEntry, error) {
	const op = "list players"

	resp, err := r.do(ctx, op, http.MethodGet, r.baseURL+"/players", nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}

	var players []models.PlayerListEntry
	if err := decodeBody(op, resp, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []models.PlayerListEntry{}
	}
	return players, nil
}

func (r *HTTPPlayerRepository) GetPlayer(ctx context.Context, id models.PlayerID) (*models.Player, error) {
	const op = "get player"
	if id == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrValidation)
	}

	resp, err := r.do(ctx, op, http.MethodGet, r.playerURL(id), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}

	var player models.Player
	if err := decodeBody(op, resp, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *HTTPPlayerRepository) CreatePlayer(ctx context.Context, player models.NewPlayer, photo *storage.Photo) (*models.PlayerRef, error) {
	const op = "create player"
	if missing := player.MissingRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	body, contentType, err := encodeNewPlayer(player, photo)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode form: %w", op, err)
	}

	resp, err := r.do(ctx, op, http.MethodPost, r.baseURL+"/players", body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}

	ref := &models.PlayerRef{}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, ref); err != nil {
			// the API is not required to describe the new player
			r.logger.DebugContext(ctx, "create player response not understood", slog.Any("error", err))
			ref = &models.PlayerRef{}
		}
	}
	return ref, nil
}

func (r *HTTPPlayerRepository) AddStatEntry(ctx context.Context, id models.PlayerID, entry models.StatEntry) error {
	const op = "add stat entry"
	if id == "" {
		return fmt.Errorf("%w: player id is required", ErrValidation)
	}

	js, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal entry: %w", op, err)
	}

	resp, err := r.do(ctx, op, http.MethodPost, r.playerURL(id), bytes.NewReader(js), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(op, resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	return nil
}

func (r *HTTPPlayerRepository) playerURL(id models.PlayerID) string {
	return r.baseURL + "/players/" + url.PathEscape(id.String())
}

func (r *HTTPPlayerRepository) do(ctx context.Context, op, method, target string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.WarnContext(ctx, "roster API request failed",
			slog.String("op", op),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return nil, &TransportError{Op: op, Err: err}
	}

	r.logger.DebugContext(ctx, "roster API responded",
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode))
	return resp, nil
}

func encodeNewPlayer(player models.NewPlayer, photo *storage.Photo) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", player.Name},
		{"role", player.Role},
		{"dob", player.DOB},
		{"battingStyle", player.BattingStyle},
		{"bowlingStyle", player.BowlingStyle},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if photo != nil {
		filename, contentType := photo.Filename, photo.ContentType
		if filename == "" {
			filename = "profile.jpg"
		}
		if contentType == "" {
			contentType = "image/jpeg"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profile"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		n, err := io.Copy(part, io.LimitReader(photo.Body, storage.MaxPhotoBytes+1))
		if err != nil {
			return nil, "", fmt.Errorf("failed to copy photo: %w", err)
		}
		if n > storage.MaxPhotoBytes {
			return nil, "", fmt.Errorf("%w: %w (limit %d bytes)", ErrValidation, storage.ErrPhotoTooLarge, storage.MaxPhotoBytes)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
