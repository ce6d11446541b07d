package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line     string
		wantKind layout.LineKind
		wantText string
	}{
		{"CONDIÇÕES ESPECIAIS:", layout.LineHeading, "CONDIÇÕES ESPECIAIS:"},
		{"PAGAMENTO - 2ª PARCELA:", layout.LineParagraph, "PAGAMENTO - 2ª PARCELA:"},
		{"  NOTAS:  ", layout.LineHeading, "NOTAS:"},
		{"- montagem incluída", layout.LineBullet, "montagem incluída"},
		{"• transporte", layout.LineBullet, "transporte"},
		{"Itens não inclusos no orçamento, de responsabilidade da contratante:", layout.LineLead,
			"Itens não inclusos no orçamento, de responsabilidade da contratante:"},
		{"Notas: texto corrido", layout.LineParagraph, "Notas: texto corrido"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, text := layout.ClassifyLine(tt.line)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Condicoes Especiais", layout.FoldAccents("Condições Especiais"))
	assert.Equal(t, "Itens nao inclusos", layout.FoldAccents("Itens não inclusos"))
	assert.Equal(t, "plain", layout.FoldAccents("plain"))
}
