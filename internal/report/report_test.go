package report

import (
	"bytes"
	"strings"
	"testing"

	"corrigo/internal/expr"
	"corrigo/internal/oracle"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

func TestDumpSearchSpaceOrdersByCostAndIncludesLocation(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 1, Location: schema.Location{FileID: 1, BeginLine: 10}, Original: expr.IntegerExpression(0)}
	space := []patch.Patch{
		{ID: patch.ID{Base: 1}, App: app, Modified: expr.IntegerExpression(1), Meta: patch.Metadata{Kind: schema.OperatorReplacement, Distance: 5}},
		{ID: patch.ID{Base: 0}, App: app, Modified: expr.IntegerExpression(2), Meta: patch.Metadata{Kind: schema.Swaping, Distance: 1}},
	}

	var buf bytes.Buffer
	if err := DumpSearchSpace(&buf, space); err != nil {
		t.Fatalf("DumpSearchSpace: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "swaping") {
		t.Fatalf("expected the lower-cost swaping patch first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "operator") {
		t.Fatalf("expected the higher-cost operator-replacement patch second, got %q", lines[1])
	}
}

func TestStatusStringIncludesPlainStatusName(t *testing.T) {
	for _, status := range []oracle.Status{oracle.Pass, oracle.Fail, oracle.Timeout} {
		if !strings.Contains(StatusString(status), status.String()) {
			t.Fatalf("StatusString(%v) missing plain status name", status)
		}
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	rows := [][]Column{
		{{Header: "test", Value: "short"}, {Header: "status", Value: "PASS"}},
		{{Header: "test", Value: "a-much-longer-test-name"}, {Header: "status", Value: "FAIL"}},
	}
	var buf bytes.Buffer
	if err := FormatTable(&buf, rows); err != nil {
		t.Fatalf("FormatTable: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
}
