// Package roster holds the client-side search over the player list.
package roster

import (
	"strings"

	"github.com/ranjitbudhathoki/cricbelbari/models"
)

// Filter returns, in order, the players whose name contains query
// case-insensitively. An empty query returns players unchanged.
func Filter(players []models.PlayerListEntry, query string) []models.PlayerListEntry {
	if query == "" {
		return players
	}

	needle := strings.ToLower(query)
	matched := make([]models.PlayerListEntry, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}
