// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"time"
)

// Scoreboard is the current score line of the monitored match.
type Scoreboard struct {
	HomeName  string
	AwayName  string
	HomeLogo  string
	AwayLogo  string
	HomeScore int
	AwayScore int
	Status    string
}

// CommentaryRecord is one narrated event as delivered by the feed.
// Immutable once decoded; the description may contain markup.
type CommentaryRecord struct {
	Minute      string
	Period      string
	Description string
	RawType     string
	Icon        string
	IsGoal      bool
	Timestamp   time.Time // zero when the feed omits it
}

// MatchInfo carries fixture metadata shown in the info panel.
type MatchInfo struct {
	Competition string
	Date        string // YYYY-MM-DD as sent by the feed
	Venue       string
	Kickoff     string // HH:MM as sent by the feed
}

// MatchSnapshot is rebuilt from scratch on every successful poll.
// No identity persists across polls; anything that must survive a
// cycle lives in the ledger or the score detector.
type MatchSnapshot struct {
	Scoreboard Scoreboard
	Commentary []CommentaryRecord // oldest first, as received
	Statistics json.RawMessage    // pass-through panel
	Lineups    json.RawMessage    // pass-through panel
	Referee    string
	Info       MatchInfo
}

// ScoreChange is emitted by the score detector when the scoreboard
// moves outside the cooldown window.
type ScoreChange struct {
	MatchID   string
	HomeScore int
	AwayScore int
	At        time.Time
}
