// Package voice converte texto transcrito de comandos de voz em sugestões de
// pedidos de compra. Parser de melhor esforço baseado em expressões regulares;
// nada aqui é vinculante, o usuário confirma as sugestões na tela.
package voice

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/wagnermocelin/pedidosIHS/internal/domain"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
	"github.com/wagnermocelin/pedidosIHS/internal/domain/repository"
)

// Suggestion uma sugestão de pedido extraída do texto.
type Suggestion struct {
	ItemID            *int64           `json:"itemId"`
	ItemName          string           `json:"itemName"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit"`
	PreferredSupplier *entity.Supplier `json:"preferredSupplier,omitempty"`
	Confidence        float64          `json:"confidence"`
	NeedsCreation     bool             `json:"needsCreation,omitempty"`
}

// Result texto original + sugestões.
type Result struct {
	OriginalText string       `json:"originalText"`
	Suggestions  []Suggestion `json:"suggestions"`
}

// Padrões aceitos, do mais ao menos específico:
//
//	"adicionar 10 quilos de tomate"
//	"pedir 5 kg de queijo"
//	"2,5 litros de azeite"
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`adicionar\s+(\d+(?:[.,]\d+)?)\s+(quilos?|kg|litros?|l|unidades?|un|caixas?|pacotes?)\s+de\s+([\p{L}]+(?:\s+[\p{L}]+)?)`),
	regexp.MustCompile(`pedir\s+(\d+(?:[.,]\d+)?)\s+(quilos?|kg|litros?|l|unidades?|un|caixas?|pacotes?)\s+de\s+([\p{L}]+(?:\s+[\p{L}]+)?)`),
	regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s+(quilos?|kg|litros?|l|unidades?|un|caixas?|pacotes?)\s+de\s+([\p{L}]+(?:\s+[\p{L}]+)?)`),
}

// Parser gera sugestões de pedido a partir de um comando de voz, casando os
// nomes contra o catálogo de itens sem diferenciar acentos.
type Parser struct {
	itemRepo repository.ItemRepository
}

// NewParser constrói o parser.
func NewParser(itemRepo repository.ItemRepository) *Parser {
	return &Parser{itemRepo: itemRepo}
}

// Parse extrai sugestões do texto. Itens não encontrados no catálogo viram
// sugestões de criação com confiança menor.
func (p *Parser) Parse(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := p.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		OriginalText: text,
		Suggestions:  parse(text, items),
	}, nil
}

func parse(text string, items []*entity.Item) []Suggestion {
	lower := normalize(text)
	suggestions := []Suggestion{}
	seen := map[string]bool{}

	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			qty, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", "."))
			if err != nil || !qty.GreaterThan(decimal.Zero) {
				continue
			}
			name := strings.TrimSpace(match[3])
			if seen[name] {
				continue
			}
			seen[name] = true

			if item := matchItem(name, items); item != nil {
				id := item.ID
				suggestions = append(suggestions, Suggestion{
					ItemID:            &id,
					ItemName:          item.Name,
					Quantity:          qty,
					Unit:              item.Unit,
					PreferredSupplier: item.PreferredSupplier,
					Confidence:        0.8,
				})
			} else {
				suggestions = append(suggestions, Suggestion{
					ItemName:      name,
					Quantity:      qty,
					Unit:          normalizeUnit(match[2]),
					Confidence:    0.5,
					NeedsCreation: true,
				})
			}
		}
	}
	return suggestions
}

// matchItem procura o item cujo nome contém (ou está contido em) o nome falado,
// comparando sem acentos e sem caixa.
func matchItem(spoken string, items []*entity.Item) *entity.Item {
	for _, item := range items {
		name := normalize(item.Name)
		if strings.Contains(name, spoken) || strings.Contains(spoken, name) {
			return item
		}
	}
	return nil
}

// normalize baixa a caixa e remove diacríticos ("Açúcar" -> "acucar"), para
// que a transcrição de voz case com o catálogo mesmo sem acentuação.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func normalizeUnit(unit string) string {
	switch {
	case strings.HasPrefix(unit, "quilo"), unit == "kg":
		return "kg"
	case strings.HasPrefix(unit, "litro"), unit == "l":
		return "litro"
	case strings.HasPrefix(unit, "unidade"), unit == "un":
		return "unidade"
	case strings.HasPrefix(unit, "caixa"):
		return "caixa"
	case strings.HasPrefix(unit, "pacote"):
		return "pacote"
	}
	return unit
}
