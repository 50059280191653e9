package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// SearchResult producto con su puntaje de relevancia para la consulta.
type SearchResult struct {
	View  *ProductView
	Score int
}

const (
	searchDefaultLimit = 20
	searchMaxLimit     = 50
	// Piso de inclusión: equivale a una similitud de nombre de 0.5 cuando no
	// hay match directo por substring.
	searchMinScore = 30
)

// SearchMenu busca productos publicados por nombre y descripción con
// tolerancia a errores de tipeo. Los matches directos por substring puntúan
// más alto; el resto entra por similitud de bigramas, ordenado por relevancia
// descendente (nombre como desempate).
func (uc *UseCase) SearchMenu(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > searchMaxLimit {
		limit = searchDefaultLimit
	}

	products, err := uc.productRepo.List(true)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	type scored struct {
		product *entity.Product
		score   int
	}
	var matches []scored
	for _, p := range products {
		if s := relevanceScore(q, p); s >= searchMinScore {
			matches = append(matches, scored{product: p, score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].product.Name < matches[j].product.Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		view, err := uc.expand(m.product)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{View: view, Score: m.score})
	}
	return results, nil
}

// Suggest devuelve nombres de producto parecidos a la consulta, para ofrecer
// "quizás quiso decir" cuando la búsqueda vuelve vacía o corta.
func (uc *UseCase) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > searchMaxLimit {
		limit = 10
	}

	products, err := uc.productRepo.List(true)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	type suggestion struct {
		name  string
		score int
	}
	var out []suggestion
	for _, p := range products {
		name := strings.ToLower(p.Name)
		switch {
		case strings.HasPrefix(name, q):
			out = append(out, suggestion{p.Name, 85})
		case strings.Contains(name, q):
			out = append(out, suggestion{p.Name, 65})
		default:
			if sim := similarity(q, name); sim >= 0.5 {
				out = append(out, suggestion{p.Name, int(sim * 60)})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].name < out[j].name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	names := make([]string, 0, len(out))
	for _, s := range out {
		names = append(names, s.name)
	}
	return names, nil
}

// relevanceScore puntúa un producto contra la consulta en minúsculas.
// Nombre exacto 100, substring 80/70, similitud difusa hasta 60; se suman
// matches por palabra y un aporte menor de la descripción.
func relevanceScore(q string, p *entity.Product) int {
	name := strings.ToLower(p.Name)
	score := 0
	switch {
	case q == name:
		score += 100
	case strings.Contains(name, q):
		score += 80
	case strings.Contains(q, name):
		score += 70
	default:
		score += int(similarity(q, name) * 60)
	}

	for _, qw := range strings.Fields(q) {
		for _, nw := range strings.Fields(name) {
			switch {
			case qw == nw:
				score += 20
			case strings.HasPrefix(nw, qw):
				score += 15
			case similarity(qw, nw) >= 0.8:
				score += 10
			}
		}
	}

	if p.Description != "" {
		desc := strings.ToLower(p.Description)
		if strings.Contains(desc, q) {
			score += 30
		} else {
			if len(desc) > 100 {
				desc = desc[:100]
			}
			score += int(similarity(q, desc) * 20)
		}
	}
	return score
}

// similarity coeficiente de Dice sobre bigramas de runas, entre 0 y 1.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	ab, bb := bigrams(a), bigrams(b)
	if len(ab) == 0 || len(bb) == 0 {
		return 0
	}
	common, total := 0, 0
	for bg, n := range ab {
		total += n
		if m := bb[bg]; m > 0 {
			if n < m {
				common += n
			} else {
				common += m
			}
		}
	}
	for _, n := range bb {
		total += n
	}
	return 2 * float64(common) / float64(total)
}

func bigrams(s string) map[string]int {
	runes := []rune(s)
	out := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		out[string(runes[i:i+2])]++
	}
	return out
}
