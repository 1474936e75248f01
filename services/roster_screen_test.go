package services

import (
	"context"
	"sync"
	"testing"

	"github.com/ranjitbudhathoki/cricbelbari/models"
	"github.com/ranjitbudhathoki/cricbelbari/repositories"
)

func rosterOf(names ...string) []models.PlayerListEntry {
	out := make([]models.PlayerListEntry, len(names))
	for i, n := range names {
		out[i] = models.PlayerListEntry{ID: models.PlayerID(string(rune('1' + i))), Name: n, Role: "Batsman"}
	}
	return out
}

func TestRosterScreenFocusAndSearch(t *testing.T) {
	repo := &MockRepository{players: rosterOf("Rohan", "Anish", "Dipendra")}
	screen := NewRosterScreen(repo, testLogger())

	screen.Focus(context.Background())
	view := screen.RosterView()
	if view.Loading || view.Alert != nil {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Players) != 3 || view.Total != 3 {
		t.Fatalf("got %d players, want 3", len(view.Players))
	}
	if view.Players[1].Open.Path != "/2" || view.Players[1].Open.Action != NavPush {
		t.Errorf("row navigation = %+v", view.Players[1].Open)
	}

	screen.Search("NIS")
	view = screen.RosterView()
	if len(view.Players) != 1 || view.Players[0].Name != "Anish" {
		t.Errorf("search result = %+v", view.Players)
	}
	if view.Query != "NIS" || view.Total != 3 {
		t.Errorf("query = %q total = %d", view.Query, view.Total)
	}

	// searching does not trigger a fetch
	if list, _, _, _ := repo.calls(); list != 1 {
		t.Errorf("ListPlayers called %d times, want 1", list)
	}
}

func TestRosterScreenFailureShowsNoData(t *testing.T) {
	repo := &MockRepository{players: rosterOf("Rohan")}
	screen := NewRosterScreen(repo, testLogger())
	screen.Focus(context.Background())

	repo.mu.Lock()
	repo.err = &repositories.TransportError{Op: "list players", StatusCode: 503}
	repo.mu.Unlock()

	screen.Focus(context.Background())
	view := screen.RosterView()
	if view.Alert == nil || view.Alert.Message != msgLoadPlayers {
		t.Errorf("alert = %+v", view.Alert)
	}
	if len(view.Players) != 0 || view.Players == nil {
		t.Errorf("players after failure = %#v, want empty", view.Players)
	}
}

func TestRosterScreenDiscardsStaleFocus(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	repo := &MockRepository{players: rosterOf("Stale")}
	repo.listHook = func(call int) {
		if call == 1 {
			close(firstStarted)
			<-releaseFirst
		}
	}

	screen := NewRosterScreen(repo, testLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		screen.Focus(context.Background())
	}()
	<-firstStarted

	// the second focus sees "Fresh" and completes first
	repo.mu.Lock()
	repo.players = rosterOf("Fresh")
	repo.mu.Unlock()
	screen.Focus(context.Background())
	close(releaseFirst)
	wg.Wait()

	view := screen.RosterView()
	if len(view.Players) != 1 || view.Players[0].Name != "Fresh" {
		t.Errorf("players = %+v, want the result of the latest focus", view.Players)
	}
}
