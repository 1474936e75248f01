package models

// StatEntry is one match appended to a player's record. Numeric fields are
// sent as typed by the user; the API aggregates them.
type StatEntry struct {
	Runs         string `json:"runs"`
	BallsFaced   string `json:"ballsFaced"`
	Wickets      string `json:"wickets"`
	Overs        string `json:"overs"`
	RunsConceded string `json:"runsConceded"`
	DidNotBat    bool   `json:"didNotBat"`
	DidNotBowl   bool   `json:"didNotBowl"`
}

// NewPlayer holds the fields of the add-player form.
type NewPlayer struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	DOB          string `json:"dob"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle"`
}

// MissingRequired reports which of name, role and dob are blank.
func (p NewPlayer) MissingRequired() []string {
	var missing []string
	if isBlank(p.Name) {
		missing = append(missing, "name")
	}
	if isBlank(p.Role) {
		missing = append(missing, "role")
	}
	if isBlank(p.DOB) {
		missing = append(missing, "dob")
	}
	return missing
}
