package voice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wagnermocelin/pedidosIHS/internal/domain/entity"
)

var catalogo = []*entity.Item{
	{ID: 1, Name: "Tomate", Unit: "kg"},
	{ID: 2, Name: "Açúcar Cristal", Unit: "kg"},
	{ID: 3, Name: "Azeite", Unit: "litro", PreferredSupplier: &entity.Supplier{ID: 7, Name: "Hortifruti Central"}},
}

func TestParse_ComandoSimples(t *testing.T) {
	got := parse("pedir 10 kg de tomate", catalogo)
	require.Len(t, got, 1)

	s := got[0]
	require.NotNil(t, s.ItemID)
	assert.Equal(t, int64(1), *s.ItemID)
	assert.Equal(t, "Tomate", s.ItemName)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "kg", s.Unit)
	assert.InDelta(t, 0.8, s.Confidence, 0.001)
	assert.False(t, s.NeedsCreation)
}

func TestParse_AcentosNaoImportam(t *testing.T) {
	// A transcrição de voz costuma vir sem acentos.
	got := parse("adicionar 2 quilos de acucar", catalogo)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].ItemID)
	assert.Equal(t, int64(2), *got[0].ItemID)
	assert.Equal(t, "Açúcar Cristal", got[0].ItemName)
}

func TestParse_QuantidadeDecimalComVirgula(t *testing.T) {
	got := parse("2,5 litros de azeite", catalogo)
	require.Len(t, got, 1)
	assert.True(t, got[0].Quantity.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, got[0].PreferredSupplier)
	assert.Equal(t, "Hortifruti Central", got[0].PreferredSupplier.Name)
}

func TestParse_ItemDesconhecidoSugereCriacao(t *testing.T) {
	got := parse("pedir 3 caixas de morango", catalogo)
	require.Len(t, got, 1)

	s := got[0]
	assert.Nil(t, s.ItemID)
	assert.Equal(t, "morango", s.ItemName)
	assert.Equal(t, "caixa", s.Unit)
	assert.True(t, s.NeedsCreation)
	assert.InDelta(t, 0.5, s.Confidence, 0.001)
}

func TestParse_MultiplosComandos(t *testing.T) {
	got := parse("pedir 10 kg de tomate e adicionar 5 litros de azeite", catalogo)
	assert.Len(t, got, 2)
}

func TestParse_TextoSemComando(t *testing.T) {
	got := parse("bom dia, tudo bem?", catalogo)
	assert.Empty(t, got)
}

func TestNormalizeUnit(t *testing.T) {
	cases := map[string]string{
		"quilos":   "kg",
		"quilo":    "kg",
		"kg":       "kg",
		"litros":   "litro",
		"unidades": "unidade",
		"un":       "unidade",
		"pacotes":  "pacote",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeUnit(in), in)
	}
}
