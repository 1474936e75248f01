package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ranjitbudhathoki/cricbelbari/handlers"
	"github.com/ranjitbudhathoki/cricbelbari/monitor"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
	"github.com/ranjitbudhathoki/cricbelbari/routes"
	"github.com/ranjitbudhathoki/cricbelbari/services"
)

// fakeRosterAPI stands in for the remote roster service.
type fakeRosterAPI struct {
	mu      sync.Mutex
	fail    bool
	posts   int
	fields  map[string]string
	profile []byte
	stats   []map[string]interface{}
}

func (f *fakeRosterAPI) handler(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Get("/players", func(w http.ResponseWriter, r *http.Request) {
		if f.failing() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `[{"id":1,"name":"Rohan","profile":"r.jpg","role":"Batsman"},{"id":2,"name":"Anish","profile":"a.jpg","role":"Bowler"}]`)
	})
	r.Get("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":`+chi.URLParam(r, "id")+`,"name":"Rohan","dob":"1999-02-11","age":25,"role":"Batsman","average":"NAN","economy":"0"}`)
	})
	r.Post("/players", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.posts++
		if f.fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("roster API got a bad form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			f.fields[k] = v[0]
		}
		if file, _, err := r.FormFile("profile"); err == nil {
			f.profile, _ = io.ReadAll(file)
			file.Close()
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":3}`)
	})
	r.Post("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.posts++
		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		f.stats = append(f.stats, body)
	})
	return r
}

func (f *fakeRosterAPI) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeRosterAPI) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts
}

func (f *fakeRosterAPI) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeRosterAPI) {
	t.Helper()

	api := &fakeRosterAPI{}
	apiServer := httptest.NewServer(api.handler(t))
	t.Cleanup(apiServer.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := monitor.NewMetrics("test")
	repo := repositories.NewHTTPPlayerRepository(apiServer.URL, metrics.InstrumentClient(apiServer.Client()), logger)
	svc := services.NewScreenService(repo, nil, metrics, logger, services.ScreenLimits{})

	router := chi.NewRouter()
	routes.SetupRoutes(router, handlers.NewScreenHandler(svc), handlers.NewFormHandler(svc), routes.Options{
		AllowedOrigins: []string{"*"},
		Logger:         logger,
		Metrics:        metrics,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, api
}

type envelope struct {
	Screen struct {
		ScreenID string                 `json:"screen_id"`
		View     map[string]interface{} `json:"view"`
	} `json:"screen"`
	Outcome struct {
		Submitted bool `json:"submitted"`
		Navigate  *struct {
			Action string `json:"action"`
			Path   string `json:"path"`
		} `json:"navigate"`
		Alert *struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"alert"`
	} `json:"outcome"`
	Form  map[string]interface{} `json:"form"`
	Error interface{}            `json:"error"`
}

func do(t *testing.T, method, url, contentType string, body io.Reader) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
	return resp.StatusCode, env
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="profile"; filename="me.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(photo)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestRosterScreenFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	status, env := do(t, http.MethodPost, srv.URL+"/screens/roster", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("open roster status = %d", status)
	}
	screenID := env.Screen.ScreenID
	if players, _ := env.Screen.View["players"].([]interface{}); len(players) != 2 {
		t.Fatalf("view = %v", env.Screen.View)
	}

	status, env = do(t, http.MethodPost, srv.URL+"/screens/"+screenID+"/search", "application/json", strings.NewReader(`{"query":"NIS"}`))
	if status != http.StatusOK {
		t.Fatalf("search status = %d", status)
	}
	players, _ := env.Screen.View["players"].([]interface{})
	if len(players) != 1 || players[0].(map[string]interface{})["name"] != "Anish" {
		t.Errorf("search result = %v", players)
	}

	if status, _ := do(t, http.MethodPost, srv.URL+"/screens/"+screenID+"/focus", "", nil); status != http.StatusOK {
		t.Errorf("focus status = %d", status)
	}
	if status, _ := do(t, http.MethodGet, srv.URL+"/screens/"+screenID, "", nil); status != http.StatusOK {
		t.Errorf("view status = %d", status)
	}
	if status, _ := do(t, http.MethodDelete, srv.URL+"/screens/"+screenID, "", nil); status != http.StatusNoContent {
		t.Errorf("close status = %d", status)
	}
	if status, _ := do(t, http.MethodGet, srv.URL+"/screens/"+screenID, "", nil); status != http.StatusNotFound {
		t.Errorf("view after close status = %d", status)
	}
}

func TestPlayerScreen(t *testing.T) {
	srv, _ := newTestServer(t)

	status, env := do(t, http.MethodPost, srv.URL+"/screens/players/7", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("status = %d", status)
	}
	if env.Screen.View["player_id"] != "7" {
		t.Errorf("view = %v", env.Screen.View)
	}
	if tabs, _ := env.Screen.View["tabs"].([]interface{}); len(tabs) != 3 {
		t.Errorf("tabs = %v", env.Screen.View["tabs"])
	}

	status, _ = do(t, http.MethodPost, srv.URL+"/screens/"+env.Screen.ScreenID+"/search", "application/json", strings.NewReader(`{"query":"x"}`))
	if status != http.StatusBadRequest {
		t.Errorf("search on player screen status = %d", status)
	}
}

func TestAddPlayerMissingFields(t *testing.T) {
	srv, api := newTestServer(t)

	body, ct := multipartBody(t, map[string]string{"name": "", "role": "Bowler", "dob": "2000-01-01"}, nil)
	status, env := do(t, http.MethodPost, srv.URL+"/forms/players", ct, body)

	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", status)
	}
	if env.Outcome.Alert == nil || env.Outcome.Alert.Message != "Name, Role, and Date of Birth are required fields." {
		t.Errorf("alert = %+v", env.Outcome.Alert)
	}
	if env.Form["role"] != "Bowler" {
		t.Errorf("form should echo the input: %v", env.Form)
	}
	if n := api.postCount(); n != 0 {
		t.Errorf("roster API got %d posts, want 0", n)
	}
}

func TestAddPlayerSuccess(t *testing.T) {
	srv, api := newTestServer(t)

	photo := []byte("\x89PNG\r\n\x1a\nimage")
	body, ct := multipartBody(t, map[string]string{
		"name": "Anish", "role": "Bowler", "dob": "2001-04-09",
		"battingStyle": "Left-hand bat", "bowlingStyle": "Left-arm spin",
	}, photo)
	status, env := do(t, http.MethodPost, srv.URL+"/forms/players", ct, body)

	if status != http.StatusCreated {
		t.Fatalf("status = %d, body = %+v", status, env)
	}
	if !env.Outcome.Submitted || env.Outcome.Navigate == nil || env.Outcome.Navigate.Path != "/" {
		t.Errorf("outcome = %+v", env.Outcome)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.fields) != 5 || api.fields["bowlingStyle"] != "Left-arm spin" {
		t.Errorf("fields = %v", api.fields)
	}
	if !bytes.Equal(api.profile, photo) {
		t.Errorf("profile = %q", api.profile)
	}
}

func TestAddPlayerGatewayFailure(t *testing.T) {
	srv, api := newTestServer(t)
	api.setFail(true)

	body, ct := multipartBody(t, map[string]string{"name": "Anish", "role": "Bowler", "dob": "2001-04-09"}, nil)
	status, env := do(t, http.MethodPost, srv.URL+"/forms/players", ct, body)

	if status != http.StatusBadGateway {
		t.Fatalf("status = %d", status)
	}
	if env.Outcome.Alert == nil || env.Outcome.Alert.Message != "Failed to add player." || env.Outcome.Navigate != nil {
		t.Errorf("outcome = %+v", env.Outcome)
	}
	if env.Form["name"] != "Anish" {
		t.Errorf("form = %v", env.Form)
	}
}

func TestAddPlayerRequiresMultipart(t *testing.T) {
	srv, _ := newTestServer(t)

	status, env := do(t, http.MethodPost, srv.URL+"/forms/players", "application/json", strings.NewReader(`{}`))
	if status != http.StatusBadRequest || env.Error == nil {
		t.Errorf("status = %d, env = %+v", status, env)
	}
}

func TestAddStat(t *testing.T) {
	srv, api := newTestServer(t)

	status, env := do(t, http.MethodPost, srv.URL+"/forms/players/7/stats", "application/json",
		strings.NewReader(`{"runs":"40","ballsFaced":"30","wickets":"","overs":"","runsConceded":"","didNotBat":false,"didNotBowl":true}`))
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if env.Outcome.Navigate == nil || env.Outcome.Navigate.Action != "back" {
		t.Errorf("outcome = %+v", env.Outcome)
	}
	api.mu.Lock()
	if len(api.stats) != 1 || api.stats[0]["runs"] != "40" || api.stats[0]["didNotBowl"] != true {
		t.Errorf("stats = %v", api.stats)
	}
	api.mu.Unlock()

	api.setFail(true)
	status, env = do(t, http.MethodPost, srv.URL+"/forms/players/7/stats", "application/json", strings.NewReader(`{"runs":"12"}`))
	if status != http.StatusBadGateway {
		t.Fatalf("failing status = %d", status)
	}
	if env.Outcome.Alert == nil || env.Outcome.Alert.Message != "Failed to add Stats." || env.Form["runs"] != "12" {
		t.Errorf("outcome = %+v, form = %v", env.Outcome, env.Form)
	}

	status, _ = do(t, http.MethodPost, srv.URL+"/forms/players/7/stats", "application/json", strings.NewReader(`{"score":1}`))
	if status != http.StatusBadRequest {
		t.Errorf("unknown field status = %d", status)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)

	if status, _ := do(t, http.MethodGet, srv.URL+"/health", "", nil); status != http.StatusOK {
		t.Errorf("health status = %d", status)
	}

	do(t, http.MethodPost, srv.URL+"/screens/roster", "", nil)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	text, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"test_open_screens 1", "test_gateway_requests_total"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
