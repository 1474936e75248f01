package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// PlayerID is the roster API identity of a player. The API sends it as a
// number on the detail endpoint and as a string on the list endpoint.
type PlayerID string

func (id PlayerID) String() string { return string(id) }

func (id *PlayerID) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	if token == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(token, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PlayerID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(token, 64); err != nil {
		return errors.New("player id must be a number or a string")
	}
	*id = PlayerID(token)
	return nil
}

// PlayerListEntry is the summary shown on the roster screen.
type PlayerListEntry struct {
	ID      PlayerID `json:"id"`
	Name    string   `json:"name"`
	Profile string   `json:"profile"`
	Role    string   `json:"role"`
}

// Player is the full detail record. Statistics are kept as raw JSON
// because the API mixes numbers, numeric strings and the "NAN" sentinel;
// the stats package decides how each one is displayed.
type Player struct {
	ID           PlayerID `json:"id"`
	Name         string   `json:"name"`
	DOB          string   `json:"dob"`
	Age          int      `json:"age"`
	Profile      string   `json:"profile"`
	Role         string   `json:"role"`
	BattingStyle string   `json:"battingStyle"`
	BowlingStyle string   `json:"bowlingStyle"`

	// Batting
	BatMatches json.RawMessage `json:"batMatches,omitempty"`
	BatInnings json.RawMessage `json:"batInnings,omitempty"`
	Runs       json.RawMessage `json:"runs,omitempty"`
	BallsFaced json.RawMessage `json:"ballsFaced,omitempty"`
	Outs       json.RawMessage `json:"outs,omitempty"`
	HighScore  json.RawMessage `json:"highScore,omitempty"`
	NotOuts    json.RawMessage `json:"notOuts,omitempty"`
	Average    json.RawMessage `json:"average,omitempty"`
	StrikeRate json.RawMessage `json:"strikeRate,omitempty"`

	// Bowling
	BowlMatches  json.RawMessage `json:"bowlMatches,omitempty"`
	BowlInnings  json.RawMessage `json:"bownInnings,omitempty"`
	Overs        json.RawMessage `json:"overs,omitempty"`
	Wickets      json.RawMessage `json:"wickets,omitempty"`
	Economy      json.RawMessage `json:"economy,omitempty"`
	BestBowling  json.RawMessage `json:"bestBowling,omitempty"`
	RunsConceded json.RawMessage `json:"runsConceded,omitempty"`
}

// Summary projects the detail record onto a roster entry.
func (p *Player) Summary() PlayerListEntry {
	return PlayerListEntry{
		ID:      p.ID,
		Name:    p.Name,
		Profile: p.Profile,
		Role:    p.Role,
	}
}

// PlayerRef is what the API returns after creating a player.
type PlayerRef struct {
	ID PlayerID `json:"id,omitempty"`
}
