package expr

import "testing"

func TestOperatorArityInvariant(t *testing.T) {
	valid := NewOperator(ADD, IntegerExpression(1), IntegerExpression(2))
	if !valid.Valid() {
		t.Fatalf("expected valid expression, got %+v", valid)
	}
	broken := valid
	broken.Args = broken.Args[:1]
	if broken.Valid() {
		t.Fatalf("expected arity mismatch to be invalid")
	}
}

func TestCorrectTypesBooleanContextWrapsIntegerOperands(t *testing.T) {
	x := NewVariable("x", Integer, "int")
	original := NewOperator(AND, x, IntegerExpression(0))

	got, err := CorrectTypes(original, Boolean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := NewOperator(AND,
		NewOperator(NEQ, x, IntegerExpression(0)),
		NewOperator(NEQ, IntegerExpression(0), IntegerExpression(0)),
	)
	if !exprEqual(got, want) {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestCorrectTypesIsIdempotent(t *testing.T) {
	x := NewVariable("x", Integer, "int")
	original := NewOperator(AND, x, IntegerExpression(0))

	once, err := CorrectTypes(original, Boolean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := CorrectTypes(once, Boolean)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if !exprEqual(once, twice) {
		t.Fatalf("CorrectTypes not idempotent: once=%s twice=%s", once.String(), twice.String())
	}
}

func TestCorrectTypesRejectsBarePointerInBooleanContext(t *testing.T) {
	p := NewVariable("p", Pointer, "int *")
	if _, err := CorrectTypes(p, Boolean); err == nil {
		t.Fatalf("expected TypeError coercing bare pointer to boolean")
	} else if _, ok := err.(*TypeError); !ok {
		t.Fatalf("expected *TypeError, got %T", err)
	}
}

func TestCorrectTypesAllowsPointerComparisonAlreadyBoolean(t *testing.T) {
	p := NewVariable("p", Pointer, "int *")
	cmp := NewOperator(NEQ, p, NullPointer())
	got, err := CorrectTypes(cmp, Boolean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != Boolean {
		t.Fatalf("expected boolean result, got %s", got.Type)
	}
}

func TestCorrectTypesBitvectorIntegerCrossover(t *testing.T) {
	bv := NewVariable("mask", Bitvector, "unsigned")
	sum := NewOperator(ADD, bv, IntegerExpression(1))

	got, err := CorrectTypes(sum, Any)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Args[0].Op != BVToInt {
		t.Fatalf("expected bitvector operand wrapped in bv_to_int, got %s", got.Args[0].String())
	}
}

func TestDistanceIdentity(t *testing.T) {
	a := NewOperator(EQ, NewVariable("x", Integer, "int"), IntegerExpression(0))
	if d := Distance(a, a); d != 0 {
		t.Fatalf("expected 0 distance for identical expressions, got %d", d)
	}
}

func TestDistanceOperatorSwap(t *testing.T) {
	x := NewVariable("x", Integer, "int")
	original := NewOperator(EQ, x, IntegerExpression(0))
	modified := NewOperator(NEQ, x, IntegerExpression(0))
	if d := Distance(original, modified); d != 1 {
		t.Fatalf("expected distance 1 for a single operator swap, got %d", d)
	}
}

func TestDistanceConstantToVariableGeneralization(t *testing.T) {
	original := IntegerExpression(0)
	modified := NewVariable("y", Integer, "int")
	if d := Distance(original, modified); d != 1 {
		t.Fatalf("expected distance 1 for constant-to-variable generalization, got %d", d)
	}
}

func TestBinaryOperatorByString(t *testing.T) {
	op, ok := BinaryOperatorByString("&&")
	if !ok || op != AND {
		t.Fatalf("expected AND, got %v ok=%v", op, ok)
	}
	if _, ok := BinaryOperatorByString("nope"); ok {
		t.Fatalf("expected lookup miss for unknown token")
	}
}
