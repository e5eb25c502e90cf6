package feed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruanlop/placarlive/internal/adapters/feed"
)

const liveBody = `{
	"success": true,
	"placar": {
		"home_name": "Flamengo",
		"away_name": "Vasco",
		"home_logo": "fla.png",
		"away_logo": "vas.png",
		"home": 2,
		"away": 1,
		"status": "2º tempo"
	},
	"narracao": [
		{"minuto": "78", "periodo": "2T", "descricao": "GOOOL! Flamengo amplia", "tipo": "gol", "gol": true},
		{"minuto": "75", "periodo": "2T", "descricao": "Cartão amarelo para o zagueiro", "tipo": "cartao_amarelo"}
	],
	"arbitragem": "Anderson Daronco",
	"informacoes": {
		"campeonato": "Campeonato Carioca",
		"data": "2026-03-14",
		"estadio": "Maracanã",
		"horario": "21:00"
	},
	"estatisticas": {"posse": {"home": 58, "away": 42}},
	"escalacao": {"home": ["Rossi"], "away": ["Léo Jardim"]}
}`

func TestDecodeLive(t *testing.T) {
	envelopes := map[string]string{
		"bare":          liveBody,
		"dados_prontos": `{"dados_prontos": ` + liveBody + `}`,
		"array":         `[` + liveBody + `]`,
		"empty key":     `{"": ` + liveBody + `}`,
	}

	for name, body := range envelopes {
		t.Run(name, func(t *testing.T) {
			p := feed.Decode([]byte(body))
			require.Equal(t, feed.KindLive, p.Kind)

			snap := p.Snapshot
			assert.Equal(t, "Flamengo", snap.Scoreboard.HomeName)
			assert.Equal(t, "Vasco", snap.Scoreboard.AwayName)
			assert.Equal(t, 2, snap.Scoreboard.HomeScore)
			assert.Equal(t, 1, snap.Scoreboard.AwayScore)
			assert.Equal(t, "2º tempo", snap.Scoreboard.Status)
			assert.Equal(t, "Anderson Daronco", snap.Referee)
			assert.Equal(t, "Campeonato Carioca", snap.Info.Competition)
			assert.Equal(t, "Maracanã", snap.Info.Venue)

			require.Len(t, snap.Commentary, 2)
			assert.Equal(t, "78", snap.Commentary[0].Minute)
			assert.True(t, snap.Commentary[0].IsGoal)
			assert.Equal(t, "cartao_amarelo", snap.Commentary[1].RawType)

			assert.NotEmpty(t, snap.Statistics)
			assert.NotEmpty(t, snap.Lineups)
		})
	}
}

func TestDecodeEnvelopePriority(t *testing.T) {
	// dados_prontos wins even when the root would also decode.
	body := `{"dados_prontos": {"status": "agenda"}, "success": true, "placar": {"home": 1}}`
	p := feed.Decode([]byte(body))
	assert.Equal(t, feed.KindAgenda, p.Kind)
}

func TestDecodeAgenda(t *testing.T) {
	t.Run("status marker", func(t *testing.T) {
		body := `{"status": "agenda", "informacoes": {"data": "2026-03-14", "horario": "21:00"}}`
		p := feed.Decode([]byte(body))
		require.Equal(t, feed.KindAgenda, p.Kind)

		want := time.Date(2026, 3, 14, 21, 0, 0, 0, time.Local)
		assert.Equal(t, want, p.Kickoff)
	})

	t.Run("modo_agenda marker", func(t *testing.T) {
		p := feed.Decode([]byte(`{"modo_agenda": true}`))
		require.Equal(t, feed.KindAgenda, p.Kind)
		assert.True(t, p.Kickoff.IsZero())
	})

	t.Run("unparseable kickoff", func(t *testing.T) {
		body := `{"status": "agenda", "informacoes": {"data": "sábado", "horario": "à noite"}}`
		p := feed.Decode([]byte(body))
		require.Equal(t, feed.KindAgenda, p.Kind)
		assert.True(t, p.Kickoff.IsZero())
	})

	t.Run("kickoff with seconds", func(t *testing.T) {
		body := `{"status": "agenda", "informacoes": {"data": "2026-03-14", "horario": "21:00:30"}}`
		p := feed.Decode([]byte(body))
		assert.Equal(t, time.Date(2026, 3, 14, 21, 0, 30, 0, time.Local), p.Kickoff)
	})
}

func TestDecodeError(t *testing.T) {
	p := feed.Decode([]byte(`{"error": "manutenção programada"}`))
	assert.Equal(t, feed.KindError, p.Kind)
}

func TestDecodeUnknown(t *testing.T) {
	cases := map[string]string{
		"empty body":        ``,
		"not json":          `<html>offline</html>`,
		"empty object":      `{}`,
		"empty array":       `[]`,
		"success no data":   `{"success": true}`,
		"data no success":   `{"placar": {"home": 1, "away": 0}}`,
		"null dados_pronto": `{"dados_prontos": null}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := feed.Decode([]byte(body))
			assert.Equal(t, feed.KindUnknown, p.Kind, "body %q", body)
		})
	}
}

func TestDecodeVenueFallback(t *testing.T) {
	body := `{"success": true, "placar": {"home": 0, "away": 0}, "informacoes": {"local": "CT do Ninho"}}`
	p := feed.Decode([]byte(body))
	require.Equal(t, feed.KindLive, p.Kind)
	assert.Equal(t, "CT do Ninho", p.Snapshot.Info.Venue)
}

func TestDecodeTimestamps(t *testing.T) {
	t.Run("unix number", func(t *testing.T) {
		body := `{"success": true, "narracao": [{"minuto": "10", "timestamp": 1765750000}]}`
		p := feed.Decode([]byte(body))
		require.Equal(t, feed.KindLive, p.Kind)
		require.Len(t, p.Snapshot.Commentary, 1)
		assert.Equal(t, time.Unix(1765750000, 0), p.Snapshot.Commentary[0].Timestamp)
	})

	t.Run("rfc3339 string", func(t *testing.T) {
		body := `{"success": true, "narracao": [{"minuto": "10", "timestamp": "2026-03-14T21:10:00Z"}]}`
		p := feed.Decode([]byte(body))
		require.Len(t, p.Snapshot.Commentary, 1)
		assert.Equal(t, time.Date(2026, 3, 14, 21, 10, 0, 0, time.UTC), p.Snapshot.Commentary[0].Timestamp)
	})

	t.Run("garbage string", func(t *testing.T) {
		body := `{"success": true, "narracao": [{"minuto": "10", "timestamp": "ontem"}]}`
		p := feed.Decode([]byte(body))
		require.Len(t, p.Snapshot.Commentary, 1)
		assert.True(t, p.Snapshot.Commentary[0].Timestamp.IsZero())
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "live", feed.KindLive.String())
	assert.Equal(t, "agenda", feed.KindAgenda.String())
	assert.Equal(t, "error", feed.KindError.String())
	assert.Equal(t, "unknown", feed.KindUnknown.String())
	assert.Equal(t, "unknown", feed.Kind(99).String())
}
