// Package render builds the display model served to clients.
//
// This layer has no decision logic beyond ordering and defaulting:
// commentary is presented newest-first (a deliberate choice, readers
// want the latest lance on top), and missing scoreboard fields coalesce
// to display defaults. Stats and lineups pass through untouched.
package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ruanlop/placarlive/internal/domain/classify"
	"github.com/ruanlop/placarlive/internal/domain/model"
)

// Display defaults for missing feed fields.
const (
	defaultHomeName = "Mandante"
	defaultAwayName = "Visitante"
	defaultStatus   = "Aguardando início"
)

// ScoreboardView is the rendered score line.
type ScoreboardView struct {
	HomeName  string `json:"home_name"`
	AwayName  string `json:"away_name"`
	HomeLogo  string `json:"home_logo,omitempty"`
	AwayLogo  string `json:"away_logo,omitempty"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

// CommentaryView is one rendered commentary line.
type CommentaryView struct {
	Minute      string `json:"minute"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description"`
	Badge       string `json:"badge,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// InfoView carries the fixture info panel.
type InfoView struct {
	Competition string `json:"competition,omitempty"`
	Date        string `json:"date,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Kickoff     string `json:"kickoff,omitempty"`
	Referee     string `json:"referee,omitempty"`
}

// DisplayModel is the full view served to the page.
type DisplayModel struct {
	Phase      string           `json:"phase"`
	Scoreboard ScoreboardView   `json:"scoreboard"`
	Commentary []CommentaryView `json:"commentary"` // newest first
	Statistics json.RawMessage  `json:"statistics,omitempty"`
	Lineups    json.RawMessage  `json:"lineups,omitempty"`
	Info       InfoView         `json:"info"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Snapshot renders a live match snapshot.
func Snapshot(snap model.MatchSnapshot, phase string, at time.Time) DisplayModel {
	out := DisplayModel{
		Phase:      phase,
		Scoreboard: scoreboard(snap.Scoreboard),
		Statistics: snap.Statistics,
		Lineups:    snap.Lineups,
		Info: InfoView{
			Competition: snap.Info.Competition,
			Date:        snap.Info.Date,
			Venue:       snap.Info.Venue,
			Kickoff:     snap.Info.Kickoff,
			Referee:     snap.Referee,
		},
		UpdatedAt: at,
	}

	// Feed order is oldest-first; the page shows the latest on top.
	out.Commentary = make([]CommentaryView, 0, len(snap.Commentary))
	for i := len(snap.Commentary) - 1; i >= 0; i-- {
		rec := snap.Commentary[i]
		cl := classify.Record(rec)
		out.Commentary = append(out.Commentary, CommentaryView{
			Minute:      rec.Minute,
			Period:      rec.Period,
			Description: rec.Description,
			Badge:       cl.Badge,
			Icon:        cl.Icon,
		})
	}
	return out
}

// Waiting renders the idle/agenda/error fallback view. A known kickoff
// becomes a countdown status line.
func Waiting(kickoff time.Time, phase string, at time.Time) DisplayModel {
	status := defaultStatus
	if !kickoff.IsZero() {
		if until := kickoff.Sub(at); until > 0 {
			status = fmt.Sprintf("Bola rola em %s", until.Round(time.Minute))
		}
	}
	return DisplayModel{
		Phase: phase,
		Scoreboard: ScoreboardView{
			HomeName: defaultHomeName,
			AwayName: defaultAwayName,
			Status:   status,
		},
		Commentary: []CommentaryView{},
		UpdatedAt:  at,
	}
}

func scoreboard(sb model.Scoreboard) ScoreboardView {
	view := ScoreboardView{
		HomeName:  sb.HomeName,
		AwayName:  sb.AwayName,
		HomeLogo:  sb.HomeLogo,
		AwayLogo:  sb.AwayLogo,
		HomeScore: sb.HomeScore,
		AwayScore: sb.AwayScore,
		Status:    sb.Status,
	}
	if view.HomeName == "" {
		view.HomeName = defaultHomeName
	}
	if view.AwayName == "" {
		view.AwayName = defaultAwayName
	}
	if view.Status == "" {
		view.Status = defaultStatus
	}
	return view
}
