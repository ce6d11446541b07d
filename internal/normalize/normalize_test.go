package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/porticus-lab/go-proposal-pdf/internal/normalize"
)

const sampleJSON = `{
  "id": 17,
  "status": "enviada",
  "created_at": "2025-03-10T14:30:00Z",
  "updated_at": "2025-03-11",
  "validade": "2025-04-10",
  "title": "Convenção de Vendas",
  "event_type": "Corporativo",
  "participants_count": 120,
  "location": "Hotel Central - Campinas",
  "start_date": "2025-05-02",
  "contractor_name": "ACME Brasil",
  "items": "[{\"ordem\": 2, \"codigo\": \"Iluminação\", \"quantidade\": \"1\", \"valor_unitario\": \"R$ 50,00\"}, {\"ordem\": 1, \"codigo\": \"Sonorização\", \"descricao\": \"Mesa e microfones\", \"quantidade\": 2, \"valor_unitario\": 100}]",
  "insumos": [{"codigo": "Cabos", "valor_unitario": "1.200,00", "desconto": "10"}],
  "opcionais": [
    {"codigo": "Gerador", "valor_unitario": 300, "selecionado": "true"},
    {"codigo": "Telão", "valor_unitario": 500}
  ],
  "politica": "<p>Cancelamento em até 48h</p>",
  "condicoes_gerais": {"forma_pagamento": "50% + 50%", "garantia": "90 dias"},
  "exibir_precos": "1",
  "client": {"company_name": "ACME Brasil", "cnpj": "11.222.333/0001-44", "endereco": "Rua A, 10", "cidade": "Campinas", "estado": "SP"},
  "supplier": {"nome": "Eventos Ltda", "cnpj": "55.666.777/0001-88", "phone": "11 4000-0000"},
  "seller": {"email": "ana@eventos.com.br"}
}`

func sample(t *testing.T) normalize.Record {
	t.Helper()
	r, err := normalize.ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	return r
}

func TestNormalize(t *testing.T) {
	doc, err := normalize.New().Normalize(sample(t))
	require.NoError(t, err)

	assert.Equal(t, "17", doc.Metadata.ID)
	assert.Equal(t, "PROP-17", doc.Metadata.DisplayNumber)
	assert.Equal(t, "10/03/2025", doc.Metadata.CreatedDate)
	assert.Equal(t, "11/03/2025", doc.Metadata.UpdatedDate)
	assert.Equal(t, "10/04/2025", doc.Metadata.ValidUntil)

	assert.Equal(t, "Convenção de Vendas", doc.Event.Name)
	assert.Equal(t, "120", doc.Event.ParticipantCount)
	assert.Equal(t, "02/05/2025", doc.Event.StartDate)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Sonorização", doc.Items[0].Code, "items are sorted by ordem")
	assert.Equal(t, "Iluminação", doc.Items[1].Code)
	assert.InDelta(t, 200.0, doc.Items[0].EffectiveSubtotal(), 1e-9)
	assert.Equal(t, "un", doc.Items[0].Unit)

	require.Len(t, doc.Supplies, 1)
	assert.InDelta(t, 1080.0, doc.Supplies[0].EffectiveSubtotal(), 1e-9)

	assert.InDelta(t, 250.0, doc.Totals.Services.Value, 1e-9)
	assert.Equal(t, "R$ 250,00", doc.Totals.Services.Formatted)
	assert.InDelta(t, 1080.0, doc.Totals.Supplies.Value, 1e-9)
	assert.InDelta(t, 300.0, doc.Totals.Optionals.Value, 1e-9, "only selected optionals count")
	assert.InDelta(t, 1330.0, doc.Totals.WithoutOptionals.Value, 1e-9)
	assert.InDelta(t, 1630.0, doc.Totals.WithOptionals.Value, 1e-9)
	assert.True(t, doc.HasSelectedOptional())

	assert.Equal(t, "ACME Brasil", doc.Client.Name)
	assert.Equal(t, "Rua A, 10, Campinas, SP", doc.Client.Address)
	assert.Equal(t, "Eventos Ltda", doc.Supplier.Name)
	require.NotNil(t, doc.Supplier.SalesRepresentative)
	assert.Equal(t, "ana", doc.Supplier.SalesRepresentative.Name)
	assert.Equal(t, "Vendedor", doc.Supplier.SalesRepresentative.Role)

	assert.Equal(t, []string{"Cancelamento em até 48h"}, doc.Texts.Policy.Lines())
	assert.True(t, doc.Texts.Conditions.Structured())
	assert.Equal(t, "50% + 50%", doc.Texts.Conditions.PaymentTerms)
	assert.Equal(t, "90 dias", doc.Texts.Conditions.Warranty)

	assert.True(t, doc.Display.PricesVisible())
	assert.True(t, doc.Display.ShowWatermark)
}

func TestNormalizeQuantityDefaultsToOne(t *testing.T) {
	r := normalize.Record{
		"id":    "1",
		"items": []any{map[string]any{"codigo": "Palco", "valor_unitario": "R$ 2.800,00"}},
	}
	doc, err := normalize.New().Normalize(r)
	require.NoError(t, err)

	require.Len(t, doc.Items, 1)
	assert.InDelta(t, 1.0, doc.Items[0].Qty(), 1e-9)
	assert.InDelta(t, 2800.0, doc.Items[0].EffectiveSubtotal(), 1e-9)
	assert.InDelta(t, 2800.0, doc.Totals.Services.Value, 1e-9)
	assert.Equal(t, "R$ 2.800,00", doc.Totals.Services.Formatted)
}

func TestNormalizeUnparseableNumbers(t *testing.T) {
	r := normalize.Record{
		"items": []any{map[string]any{"quantidade": "abc", "valor_unitario": "n/d", "desconto": "??"}},
	}
	doc, err := normalize.New().Normalize(r)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, doc.Items[0].Qty(), 1e-9)
	assert.Zero(t, doc.Items[0].UnitPrice)
	assert.Zero(t, doc.Totals.WithOptionals.Value)
}

func TestNormalizeDisplayFlags(t *testing.T) {
	tests := []struct {
		name   string
		record normalize.Record
		want   bool
	}{
		{"default shows prices", normalize.Record{}, true},
		{"primary flag false", normalize.Record{"exibir_precos": false}, false},
		{"primary string off", normalize.Record{"exibir_precos": "off"}, false},
		{"primary wins over legacy", normalize.Record{"exibir_precos": "true", "incluir_v_un_itens": false}, true},
		{"any legacy false hides", normalize.Record{"incluir_v_un_opcionais": "0"}, false},
		{"unknown legacy value ignored", normalize.Record{"incluir_v_un_insumos": "talvez"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := normalize.New().Normalize(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Display.PricesVisible())
		})
	}
}

func TestNormalizeWatermark(t *testing.T) {
	doc, err := normalize.New().Normalize(normalize.Record{"status": "finalizada"})
	require.NoError(t, err)
	assert.False(t, doc.Display.ShowWatermark)
	assert.Equal(t, "finalizada", doc.Metadata.Status)

	doc, err = normalize.New().Normalize(normalize.Record{})
	require.NoError(t, err)
	assert.True(t, doc.Display.ShowWatermark)
	assert.Equal(t, "rascunho", doc.Metadata.Status)
}

func TestNormalizeDefaultTexts(t *testing.T) {
	doc, err := normalize.New().Normalize(normalize.Record{"politica": "  ", "condicoes_gerais": "[]"})
	require.NoError(t, err)

	assert.Equal(t, "POLÍTICAS PADRÃO:", doc.Texts.Policy.Lines()[0])
	assert.False(t, doc.Texts.Conditions.Structured())
	assert.Equal(t, "CONDIÇÕES GERAIS PADRÃO:", doc.Texts.Conditions.Content.Lines()[0])
}

func TestNormalizeMissingParties(t *testing.T) {
	doc, err := normalize.New().Normalize(normalize.Record{})
	require.NoError(t, err)

	assert.Equal(t, "Cliente não informado", doc.Client.Name)
	assert.Equal(t, "Fornecedor não informado", doc.Supplier.Name)
	assert.Nil(t, doc.Supplier.SalesRepresentative)
}

func TestNormalizeNil(t *testing.T) {
	_, err := normalize.New().Normalize(nil)
	assert.ErrorIs(t, err, normalize.ErrEmptyRecord)
}

func TestNormalizeWarnsOnBadData(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := normalize.New(normalize.WithLogger(zap.New(core)))

	doc, err := n.Normalize(normalize.Record{"items": "[{broken", "created_at": "ontem"})
	require.NoError(t, err)

	assert.Empty(t, doc.Items)
	assert.Equal(t, "ontem", doc.Metadata.CreatedDate)
	assert.Equal(t, 1, logs.FilterMessage("discarding unreadable item list").Len())
	assert.Equal(t, 1, logs.FilterMessage("keeping unreadable date").Len())
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"html stripped", "<b>Pagamento</b> à vista", []string{"Pagamento à vista"}},
		{"json punctuation stripped", `Itens: {som}, [luz]`, []string{"Itens: som, luz"}},
		{"json array text", `[{"titulo": "PAGAMENTO:", "conteudo": "30 dias"}]`, []string{"PAGAMENTO:", "30 dias"}},
		{"decoded array", []any{map[string]any{"title": "A", "text": "b"}, "c"}, []string{"A", "b", "c"}},
		{"object", map[string]any{"title": "T", "content": "x\ny"}, []string{"T", "x", "y"}},
		{"empty", "", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Text(tt.in).Lines())
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		in     any
		want   bool
		wantOK bool
	}{
		{true, true, true},
		{"YES", true, true},
		{" on ", true, true},
		{"f", false, true},
		{"", false, true},
		{float64(0), false, true},
		{float64(2), true, true},
		{"talvez", false, false},
		{nil, false, false},
	}
	for _, tt := range tests {
		got, ok := normalize.ToBool(tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-03-10", "2025-03-10T23:59:00-03:00", "2025-03-10 08:00:00+00", "10/03/2025"} {
		d, err := normalize.ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, "10/03/2025", d.Format("02/01/2006"), s)
	}
	_, err := normalize.ParseDate("março")
	assert.Error(t, err)
}
