package patch

import (
	"testing"

	"corrigo/internal/expr"
	"corrigo/internal/schema"
)

func TestIDEnvPairs(t *testing.T) {
	id := ID{Base: 1, Int2: 2, Bool2: 3, Cond3: 4, Param: 5}
	env := id.EnvPairs()
	want := map[string]string{
		"F1X_ID_BASE":  "1",
		"F1X_ID_INT2":  "2",
		"F1X_ID_BOOL2": "3",
		"F1X_ID_COND3": "4",
		"F1X_ID_PARAM": "5",
	}
	for k, v := range want {
		if env[k] != v {
			t.Fatalf("%s: got %q want %q", k, env[k], v)
		}
	}
}

func TestPatchKeyOfScopesToOwningApplication(t *testing.T) {
	app := &schema.SchemaApplication{AppID: 7}
	p := Patch{
		ID:       ID{Base: 1},
		App:      app,
		Modified: expr.IntegerExpression(1),
		Meta:     Metadata{Kind: schema.Concretization, Distance: 1},
	}
	key := p.KeyOf()
	if key.AppID != 7 || key.ID.Base != 1 {
		t.Fatalf("unexpected key %+v", key)
	}
}

func TestCoverageSetRecordMerges(t *testing.T) {
	s := make(Set)
	key := Key{AppID: 1, ID: ID{Base: 1}}
	s.Record("t1", key, Coverage{"a.c": {1: {}, 2: {}}})
	s.Record("t1", key, Coverage{"a.c": {3: {}}, "b.c": {1: {}}})

	got := s["t1"][key]
	if len(got["a.c"]) != 3 {
		t.Fatalf("expected 3 lines covered in a.c, got %d", len(got["a.c"]))
	}
	if len(got["b.c"]) != 1 {
		t.Fatalf("expected 1 line covered in b.c, got %d", len(got["b.c"]))
	}
}
