package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		spec    string
		total   int
		want    []int
		wantErr bool
	}{
		{"", 3, []int{0, 1, 2}, false},
		{"2", 3, []int{1}, false},
		{"1-3", 5, []int{0, 1, 2}, false},
		{"1,3", 3, []int{0, 2}, false},
		{"1-2, 2, 3", 3, []int{0, 1, 2}, false},
		{"0", 3, nil, true},
		{"4", 3, nil, true},
		{"3-1", 3, nil, true},
		{"1-9", 3, nil, true},
		{"x", 3, nil, true},
		{"1-x", 3, nil, true},
	}
	for _, tt := range tests {
		got, err := parsePageRange(tt.spec, tt.total)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePageRange(%q, %d) error = %v, wantErr %v", tt.spec, tt.total, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parsePageRange(%q, %d) = %v, want %v", tt.spec, tt.total, got, tt.want)
		}
	}
}

const record = `{
  "id": 17,
  "numero": "PROP-17",
  "created_at": "2025-03-10",
  "title": "Convenção Anual",
  "event_type": "Corporativo",
  "start_date": "2025-04-15",
  "location": "Centro de Convenções - Campinas",
  "exibir_precos": true,
  "items": [{"codigo": "Sonorização", "quantidade": 2, "valor_unitario": "1.200,00", "ordem": 1}],
  "client": {"nome": "Acme"},
  "supplier": {"nome": "Eventos Ltda"}
}`

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	if err := app.Run(append([]string{"proposalpdf", "--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...)); err != nil {
		t.Fatalf("run %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestRenderAndInspect(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "record.json")
	if err := os.WriteFile(input, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}

	out := runApp(t, "render", "-o", dir, input)
	path := filepath.Join(dir, "15042025_Corporativo_Acme_Campinas.pdf")
	if !strings.HasPrefix(out, path) {
		t.Fatalf("render output = %q, want prefix %q", out, path)
	}

	info := runApp(t, "inspect", path)
	for _, want := range []string{"Version: PDF-1.3", "Page 1: 595 x 842 pt"} {
		if !strings.Contains(info, want) {
			t.Errorf("inspect output missing %q:\n%s", want, info)
		}
	}

	text := runApp(t, "inspect", "--text", "-p", "1", path)
	if !strings.Contains(text, "Página 1 de") {
		t.Errorf("page text lacks the footer label:\n%s", text)
	}
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "record.json")
	if err := os.WriteFile(input, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "nested", "out.pdf")

	runApp(t, "render", "--file", target, input)

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("dir holds %d entries, want input and nested/ only", len(entries))
	}
}

func TestRenderNormalizedYAML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "proposal.yaml")
	doc := `metadata:
  display_number: PROP-9
  created_date: 10/03/2025
client:
  name: Acme
supplier:
  name: Eventos Ltda
`
	if err := os.WriteFile(input, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "p.pdf")

	runApp(t, "render", "--normalized", "-f", target, input)

	text := runApp(t, "inspect", "--text", target)
	if !strings.Contains(text, "PROP-9") {
		t.Errorf("rendered text lacks the proposal number:\n%s", text)
	}
}
