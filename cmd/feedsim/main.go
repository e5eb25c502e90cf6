// Command feedsim serves a fake live-match feed for manual testing.
//
// It walks a fixture through agenda -> live -> final, emitting new
// commentary on a fixed cadence and rotating through the envelope
// variants the real endpoint is known to produce. Point the service at
// http://localhost:9090/feed and watch the phases shift.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

type lance struct {
	minute string
	tipo   string
	texto  string
	gol    bool
}

// A short, scripted match. One lance is released per tick.
var script = []lance{
	{minute: "1", tipo: "", texto: "Começa o jogo no Maracanã!"},
	{minute: "9", tipo: "", texto: "Cruzamento na área, zaga afasta."},
	{minute: "17", tipo: "cartao_amarelo", texto: "Cartão amarelo para o volante após falta dura."},
	{minute: "23", tipo: "gol", texto: "GOOOL! Atacante aproveita o rebote, 1 a 0.", gol: true},
	{minute: "31", tipo: "lance_importante", texto: "Quase o empate! Bola na trave."},
	{minute: "45", tipo: "substituicao", texto: "Sai: camisa 7. Entra: camisa 19."},
	{minute: "52", tipo: "penalti", texto: "Pênalti marcado após toque de mão na área!"},
	{minute: "53", tipo: "gol", texto: "GOOOL de pênalti! Tudo igual, 1 a 1.", gol: true},
	{minute: "78", tipo: "cartao_vermelho", texto: "Expulso! Cartão vermelho direto para o zagueiro."},
	{minute: "90", tipo: "", texto: "Fim de jogo."},
}

type simulator struct {
	mu        sync.Mutex
	start     time.Time
	agendaFor time.Duration
	tick      time.Duration
	requests  int
}

func (s *simulator) handleFeed(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.requests++
	envelope := s.requests % 3
	elapsed := time.Since(s.start)
	s.mu.Unlock()

	var payload map[string]any
	if elapsed < s.agendaFor {
		kickoff := s.start.Add(s.agendaFor)
		payload = map[string]any{
			"status": "agenda",
			"informacoes": map[string]any{
				"data":    kickoff.Format("2006-01-02"),
				"horario": kickoff.Format("15:04"),
			},
		}
	} else {
		payload = s.livePayload(elapsed - s.agendaFor)
	}

	// Rotate envelope variants the way the real endpoint does.
	var body any
	switch envelope {
	case 0:
		body = map[string]any{"dados_prontos": payload}
	case 1:
		body = []any{payload}
	default:
		body = payload
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode feed: %v", err)
	}
}

func (s *simulator) livePayload(liveFor time.Duration) map[string]any {
	released := int(liveFor/s.tick) + 1
	if released > len(script) {
		released = len(script)
	}

	home, away := 0, 0
	narracao := make([]map[string]any, 0, released)
	for _, l := range script[:released] {
		if l.gol {
			if l.minute == "23" {
				home++
			} else {
				away++
			}
		}
		narracao = append(narracao, map[string]any{
			"minuto":    l.minute,
			"periodo":   period(l.minute),
			"descricao": l.texto,
			"tipo":      l.tipo,
			"gol":       l.gol,
		})
	}

	return map[string]any{
		"success": true,
		"placar": map[string]any{
			"home":      home,
			"away":      away,
			"home_name": "Tricolor FC",
			"away_name": "Alvinegro EC",
			"status":    "2º tempo",
		},
		"narracao":   narracao,
		"arbitragem": "A. Silva",
		"informacoes": map[string]any{
			"campeonato": "Campeonato Simulado",
			"data":       s.start.Format("2006-01-02"),
			"estadio":    "Maracanã",
		},
	}
}

func period(minute string) string {
	if len(minute) >= 2 && minute >= "46" {
		return "2T"
	}
	return "1T"
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	agendaFor := flag.Duration("agenda", 30*time.Second, "how long to stay in agenda mode")
	tick := flag.Duration("tick", 10*time.Second, "delay between released lances")
	flag.Parse()

	sim := &simulator{
		start:     time.Now(),
		agendaFor: *agendaFor,
		tick:      *tick,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", sim.handleFeed)

	fmt.Printf("feedsim listening on %s (agenda for %s, lance every %s)\n", *addr, *agendaFor, *tick)
	log.Fatal(http.ListenAndServe(*addr, mux))
}
