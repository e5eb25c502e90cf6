// Package feed fetches and decodes the live-match payload.
//
// The endpoint is inconsistent about its outer shape: the payload may
// arrive bare, wrapped in {"dados_prontos": ...}, as the first element
// of an array, or under an empty-string key. Decoding unwraps those
// envelopes in that priority order, then classifies the payload once
// into a tagged union so nothing downstream probes loose JSON.
package feed

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ruanlop/placarlive/internal/domain/model"
)

// Kind tags the decoded payload shape.
type Kind int

// Recognized payload shapes. Anything else is KindUnknown and treated
// like an error by the poller.
const (
	KindUnknown Kind = iota
	KindLive
	KindAgenda
	KindError
)

// String returns the lower-case label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindAgenda:
		return "agenda"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Payload is one decoded poll result.
type Payload struct {
	Kind     Kind
	Snapshot model.MatchSnapshot // valid when Kind is KindLive
	Kickoff  time.Time           // valid when Kind is KindAgenda and parseable
}

// Decode unwraps envelopes and classifies raw JSON into a Payload.
// It never fails; missing fields default and unrecognized shapes come
// back as KindUnknown.
func Decode(raw []byte) Payload {
	body := unwrap(raw)
	if !body.Exists() {
		return Payload{Kind: KindUnknown}
	}

	switch {
	case body.Get("error").Exists():
		return Payload{Kind: KindError}
	case body.Get("status").String() == "agenda" || body.Get("modo_agenda").Bool():
		return Payload{
			Kind: KindAgenda,
			Kickoff: parseKickoff(
				body.Get("informacoes.data").String(),
				body.Get("informacoes.horario").String(),
			),
		}
	case body.Get("success").Bool() &&
		(body.Get("placar").Exists() || body.Get("narracao").Exists()):
		return Payload{Kind: KindLive, Snapshot: decodeSnapshot(body)}
	default:
		return Payload{Kind: KindUnknown}
	}
}

// unwrap peels the envelope variants in priority order.
func unwrap(raw []byte) gjson.Result {
	root := gjson.ParseBytes(raw)
	if !root.Exists() {
		return gjson.Result{}
	}
	if v := root.Get("dados_prontos"); v.Exists() {
		return v
	}
	if root.IsArray() {
		arr := root.Array()
		if len(arr) == 0 {
			return gjson.Result{}
		}
		return arr[0]
	}
	if root.IsObject() {
		if v, ok := root.Map()[""]; ok {
			return v
		}
	}
	return root
}

func decodeSnapshot(body gjson.Result) model.MatchSnapshot {
	placar := body.Get("placar")
	info := body.Get("informacoes")

	snap := model.MatchSnapshot{
		Scoreboard: model.Scoreboard{
			HomeName:  placar.Get("home_name").String(),
			AwayName:  placar.Get("away_name").String(),
			HomeLogo:  placar.Get("home_logo").String(),
			AwayLogo:  placar.Get("away_logo").String(),
			HomeScore: int(placar.Get("home").Int()),
			AwayScore: int(placar.Get("away").Int()),
			Status:    placar.Get("status").String(),
		},
		Referee: body.Get("arbitragem").String(),
		Info: model.MatchInfo{
			Competition: info.Get("campeonato").String(),
			Date:        info.Get("data").String(),
			Venue:       venue(info),
			Kickoff:     info.Get("horario").String(),
		},
	}

	body.Get("narracao").ForEach(func(_, rec gjson.Result) bool {
		snap.Commentary = append(snap.Commentary, decodeRecord(rec))
		return true
	})

	if stats := body.Get("estatisticas"); stats.Exists() {
		snap.Statistics = json.RawMessage(stats.Raw)
	}
	if lineups := body.Get("escalacao"); lineups.Exists() {
		snap.Lineups = json.RawMessage(lineups.Raw)
	}
	return snap
}

func decodeRecord(rec gjson.Result) model.CommentaryRecord {
	out := model.CommentaryRecord{
		Minute:      rec.Get("minuto").String(),
		Period:      rec.Get("periodo").String(),
		Description: rec.Get("descricao").String(),
		RawType:     rec.Get("tipo").String(),
		Icon:        rec.Get("icone").String(),
		IsGoal:      rec.Get("gol").Bool(),
	}
	if ts := rec.Get("timestamp"); ts.Exists() {
		out.Timestamp = parseTimestamp(ts)
	}
	return out
}

// venue prefers "estadio" and falls back to "local".
func venue(info gjson.Result) string {
	if v := info.Get("estadio").String(); v != "" {
		return v
	}
	return info.Get("local").String()
}

// parseKickoff combines the agenda date ("YYYY-MM-DD") and time
// ("HH:MM") fields. Returns the zero time when either is unusable.
func parseKickoff(date, clock string) time.Time {
	if date == "" || clock == "" {
		return time.Time{}
	}
	layouts := []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, date+" "+clock, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseTimestamp accepts RFC3339 strings or unix epoch numbers.
func parseTimestamp(ts gjson.Result) time.Time {
	if ts.Type == gjson.Number {
		return time.Unix(ts.Int(), 0)
	}
	if t, err := time.Parse(time.RFC3339, ts.String()); err == nil {
		return t
	}
	return time.Time{}
}
