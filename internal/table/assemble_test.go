package table

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/edouard-claude/tably/internal/filters"
	"github.com/edouard-claude/tably/internal/record"
)

func people() []any {
	return []any{
		map[string]any{"name": "ada", "role": "lead", "email": "ada@example.org"},
		map[string]any{"name": "grace", "role": "dev", "email": "grace@example.org"},
	}
}

func newAssembler() *Assembler {
	return NewAssembler(filters.NewRegistry())
}

func TestAssembleBasic(t *testing.T) {
	tbl, err := newAssembler().Render(`cols="[name,role]",tstyle=striped`, people())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Headers) != 2 || tbl.Headers[0] != "Name" || tbl.Headers[1] != "Role" {
		t.Errorf("headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "ada" || tbl.Rows[1][1] != "dev" {
		t.Errorf("rows = %v", tbl.Rows)
	}
	if strings.Join(tbl.StyleClasses, " ") != "table table-striped" {
		t.Errorf("styleClasses = %v", tbl.StyleClasses)
	}
}

func TestAssembleCustomHeaders(t *testing.T) {
	tbl, err := newAssembler().Render(`cols="[name,role]",headers="[Who,What]"`, people())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Headers[0] != "Who" || tbl.Headers[1] != "What" {
		t.Errorf("headers = %v", tbl.Headers)
	}
}

func TestAssembleHeaderCountMismatch(t *testing.T) {
	_, err := newAssembler().Render(`cols="[a,b,c]",headers="[X,Y]"`, people())
	if !errors.Is(err, ErrHeaderCountMismatch) {
		t.Fatalf("err = %v, want ErrHeaderCountMismatch", err)
	}
	if !strings.Contains(err.Error(), "(2)") || !strings.Contains(err.Error(), "(3)") {
		t.Errorf("message should report both counts: %v", err)
	}
}

func TestAssembleMatchedCountsNeverMismatch(t *testing.T) {
	_, err := newAssembler().Render(`cols="[a,b,c]",headers="[X,Y,Z]"`, people())
	if err != nil {
		t.Fatalf("matched counts must not error: %v", err)
	}
}

func TestAssembleExpressionCountMismatch(t *testing.T) {
	_, err := newAssembler().Render(`cols="[a,b]",expr="['upper']"`, people())
	if !errors.Is(err, ErrExpressionCountMismatch) {
		t.Fatalf("err = %v, want ErrExpressionCountMismatch", err)
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	// Even invalid-looking cols/headers pairs never surface for an empty
	// sequence: the message short-circuits all column work.
	tbl, err := newAssembler().Render(`cols="[a]",headers="[X,Y]",empty=nothing here`, []any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.EmptyMessage != "nothing here" {
		t.Errorf("emptyMessage = %q", tbl.EmptyMessage)
	}
	if tbl.Headers != nil || tbl.Rows != nil {
		t.Errorf("empty table must not build headers/rows: %v / %v", tbl.Headers, tbl.Rows)
	}
}

func TestAssembleExpectedList(t *testing.T) {
	_, err := newAssembler().Render("", map[string]any{"name": "ada"})
	if !errors.Is(err, ErrExpectedList) {
		t.Fatalf("err = %v, want ErrExpectedList", err)
	}
	if !strings.Contains(err.Error(), "map[string]interface") {
		t.Errorf("message should name the actual type: %v", err)
	}
}

func TestAssembleNonRecordElement(t *testing.T) {
	_, err := newAssembler().Render("", []any{"just a string"})
	if !errors.Is(err, ErrExpectedList) {
		t.Fatalf("err = %v, want ErrExpectedList", err)
	}
}

func TestAssembleAutoDetectColumns(t *testing.T) {
	tbl, err := newAssembler().Render("", people())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Sorted key order keeps auto-detection deterministic.
	want := []string{"Email", "Name", "Role"}
	for i, h := range want {
		if tbl.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", tbl.Headers, want)
		}
	}
}

func TestAssembleHumanizedHeaders(t *testing.T) {
	rows := []any{map[string]any{"created_at": "2024-01-01", "profile": map[string]any{"email": "x@y"}}}
	tbl, err := newAssembler().Render(`cols="[created_at,profile.email]"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Headers[0] != "Created At" || tbl.Headers[1] != "Email" {
		t.Errorf("headers = %v", tbl.Headers)
	}
}

func TestAssembleLimit(t *testing.T) {
	var resolved int
	registry := filters.NewEmptyRegistry()
	registry.Register("probe", filters.Func(func(params map[string]string, value any, row record.Row) (string, error) {
		resolved++
		return record.String(value), nil
	}))

	rows := make([]any, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, map[string]any{"n": fmt.Sprintf("%d", i)})
	}

	asm := NewAssembler(registry)
	tbl, err := asm.Render(`cols="[n]",expr="['probe']",limit=2`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "0" || tbl.Rows[1][0] != "1" {
		t.Errorf("rows = %v, want first two", tbl.Rows)
	}
	// Rows beyond the limit are never resolved or filtered.
	if resolved != 2 {
		t.Errorf("filter ran %d times, want 2", resolved)
	}
}

func TestAssembleAbsentCell(t *testing.T) {
	rows := []any{
		map[string]any{"name": "ada", "phone": "123"},
		map[string]any{"name": "grace"},
	}
	tbl, err := newAssembler().Render(`cols="[name,phone]",empty_cell=n/a`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][1] != "123" {
		t.Errorf("present cell = %q", tbl.Rows[0][1])
	}
	if tbl.Rows[1][1] != "n/a" {
		t.Errorf("absent cell = %q, want empty_cell text", tbl.Rows[1][1])
	}
}

func TestAssembleListCellJoin(t *testing.T) {
	rows := []any{map[string]any{"tags": []any{"a", "b"}}}

	tbl, err := newAssembler().Render(`cols="[tags]"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "a, b" {
		t.Errorf("default join = %q, want %q", tbl.Rows[0][0], "a, b")
	}

	tbl, err = newAssembler().Render(`cols="[tags]",join="<br>"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "a<br>b" {
		t.Errorf("custom join = %q, want %q", tbl.Rows[0][0], "a<br>b")
	}
}

func TestAssembleListCellFiltersPerElement(t *testing.T) {
	rows := []any{map[string]any{"tags": []any{"a", "b"}}}
	tbl, err := newAssembler().Render(`cols="[tags]",expr="['upper']"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The chain sees each element, never the joined string.
	if tbl.Rows[0][0] != "A, B" {
		t.Errorf("cell = %q, want %q", tbl.Rows[0][0], "A, B")
	}
}

func TestAssembleChainPipelineOrder(t *testing.T) {
	rows := []any{map[string]any{"email": "x@y.com"}}
	tbl, err := newAssembler().Render(`cols="[email]",expr="['upper|linkify:url=mailto:[email]']"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// upper runs first; linkify wraps the uppercased string.
	want := `<a href="mailto:x@y.com">X@Y.COM</a>`
	if tbl.Rows[0][0] != want {
		t.Errorf("cell = %q, want %q", tbl.Rows[0][0], want)
	}
}

func TestAssembleUnknownFilterIsFatal(t *testing.T) {
	_, err := newAssembler().Render(`cols="[name]",expr="['frobnicate']"`, people())
	if !errors.Is(err, filters.ErrUnknownFilter) {
		t.Fatalf("err = %v, want ErrUnknownFilter", err)
	}
}

func TestAssembleCellFailureDegrades(t *testing.T) {
	registry := filters.NewEmptyRegistry()
	registry.Register("boom", filters.Func(func(params map[string]string, value any, row record.Row) (string, error) {
		return "", fmt.Errorf("kaput")
	}))

	asm := NewAssembler(registry)
	tbl, err := asm.Render(`cols="[name,role]",expr="['boom','']"`, people())
	if err != nil {
		t.Fatalf("a failing cell must not abort the table: %v", err)
	}
	// The failing cell falls back to the raw value.
	if tbl.Rows[0][0] != "ada" {
		t.Errorf("degraded cell = %q, want raw value", tbl.Rows[0][0])
	}
	if tbl.Rows[0][1] != "lead" {
		t.Errorf("healthy cell = %q", tbl.Rows[0][1])
	}
	if len(tbl.CellErrors) != 2 {
		t.Errorf("cellErrors = %d, want one per failing row", len(tbl.CellErrors))
	}
}

func TestAssemblePlainCellsEscaped(t *testing.T) {
	rows := []any{map[string]any{"note": "<script>"}}
	tbl, err := newAssembler().Render(`cols="[note]"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "&lt;script&gt;" {
		t.Errorf("cell = %q, want escaped", tbl.Rows[0][0])
	}
}

func TestAssembleRowContextReachesFilters(t *testing.T) {
	rows := []any{map[string]any{"name": "ada", "id": "r-1"}}
	tbl, err := newAssembler().Render(`cols="[name]",expr="['linkify:url=/records/[id]']"`, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tbl.Rows[0][0], `href="/records/r-1"`) {
		t.Errorf("cell = %q, sibling field should interpolate", tbl.Rows[0][0])
	}
}
