// Package classify maps commentary records to semantic event categories.
//
// Classification is a pure function over the record's description, raw
// type label and icon. Rules are ordered and the first match wins, so a
// record mixing goal and card language resolves to a goal.
package classify

import (
	"strings"

	"github.com/ruanlop/placarlive/internal/domain/model"
)

// Category is the semantic kind of a commentary event.
type Category string

// Known categories, from most to least urgent.
const (
	Goal         Category = "goal"
	Penalty      Category = "penalty"
	RedCard      Category = "red"
	YellowCard   Category = "yellow"
	Substitution Category = "substitution"
	Notable      Category = "notable"
	Summary      Category = "summary"
	Normal       Category = "normal"
)

// Priority returns the fixed playback priority. Lower is more urgent.
func (c Category) Priority() int {
	switch c {
	case Goal:
		return 1
	case Penalty:
		return 2
	case RedCard:
		return 3
	case YellowCard:
		return 4
	case Substitution:
		return 5
	case Notable:
		return 6
	case Summary:
		return 7
	default:
		return 10
	}
}

// Animates reports whether the category plays a visual notification.
func (c Category) Animates() bool {
	switch c {
	case Goal, Penalty, RedCard, YellowCard:
		return true
	default:
		return false
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Goal, Penalty, RedCard, YellowCard, Substitution, Notable, Summary, Normal:
		return true
	default:
		return false
	}
}

// Classification is the derived view of a commentary record.
type Classification struct {
	Category Category
	Priority int
	Animates bool
	Badge    string
	Icon     string
}

// Display attributes per category.
var badges = map[Category]Classification{
	Goal:         {Badge: "GOOOL!", Icon: "soccer-ball"},
	Penalty:      {Badge: "Pênalti", Icon: "penalty-spot"},
	RedCard:      {Badge: "Cartão Vermelho", Icon: "card-red"},
	YellowCard:   {Badge: "Cartão Amarelo", Icon: "card-yellow"},
	Substitution: {Badge: "Substituição", Icon: "swap"},
	Notable:      {Badge: "Que lance!", Icon: "flame"},
	Summary:      {Badge: "Resumo", Icon: "list"},
	Normal:       {Badge: "", Icon: ""},
}

// Phrasing tables. The feed narrates in Portuguese but mirrors some
// English sources verbatim, so both vocabularies are matched.
var (
	goalPhrases = []string{
		"golaço", "golaco", "é gol", "e gol do", "marca o gol",
		"gol do", "gol da", "gol de", "gol!", "gol contra",
		"scored", "scores", "equalizes", "equaliza", "extends lead",
		"amplia o placar", "abre o placar",
	}
	penaltyPhrases = []string{"pênalti", "penalti", "penalty"}
	redPhrases     = []string{
		"cartão vermelho", "cartao vermelho", "red card", "sent off", "expulso",
	}
	yellowPhrases  = []string{"cartão amarelo", "cartao amarelo", "yellow card"}
	notablePhrases = []string{
		"incrível", "incrivel", "incredible", "que defesa", "saved", "salvou",
		"na trave", "quase", "so close", "cleared just in time",
		"tirou em cima da linha",
	}
)

// Record classifies a single commentary record. It never fails; a
// record matching no rule is Normal and does not animate.
func Record(rec model.CommentaryRecord) Classification {
	desc := strings.ToLower(rec.Description)
	raw := strings.ToLower(strings.TrimSpace(rec.RawType))
	icon := strings.ToLower(strings.TrimSpace(rec.Icon))

	switch {
	case rec.IsGoal,
		raw == "gol" || raw == "goal",
		strings.Contains(icon, "soccer-ball") || strings.Contains(icon, "gol"),
		goalShout(desc),
		containsAny(desc, goalPhrases):
		return build(Goal)
	case raw == "penalti" || raw == "pênalti" || raw == "penalty",
		containsAny(desc, penaltyPhrases):
		return build(Penalty)
	case raw == "cartao_vermelho" || raw == "red_card",
		strings.Contains(icon, "red"),
		containsAny(desc, redPhrases):
		return build(RedCard)
	case raw == "cartao_amarelo" || raw == "yellow_card",
		strings.Contains(icon, "yellow"),
		containsAny(desc, yellowPhrases):
		return build(YellowCard)
	case raw == "substituicao" || raw == "substituição" || raw == "substitution",
		strings.Contains(desc, "sai:") && strings.Contains(desc, "entra:"),
		strings.Contains(desc, "off:") && strings.Contains(desc, "on:"),
		strings.Contains(desc, "substitui"):
		return build(Substitution)
	case raw == "lance_importante" || raw == "highlight",
		containsAny(desc, notablePhrases):
		return build(Notable)
	case raw == "sumario_automatico" || raw == "resumo_automatico" ||
		raw == "automatic_summary" || strings.Contains(raw, "summary"):
		return build(Summary)
	default:
		return build(Normal)
	}
}

func build(c Category) Classification {
	d := badges[c]
	return Classification{
		Category: c,
		Priority: c.Priority(),
		Animates: c.Animates(),
		Badge:    d.Badge,
		Icon:     d.Icon,
	}
}

// goalShout matches the elongated goal call ("gool", "goool", ...).
// At least two o's are required so that "gol" inside an ordinary word,
// "goleiro" for one, does not trip it.
func goalShout(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != 'g' {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == 'o' {
			j++
		}
		if j-i >= 3 && j < len(runes) && runes[j] == 'l' {
			return true
		}
	}
	return false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
