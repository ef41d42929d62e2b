package alertsengine

import "testing"

func TestCompileSimpleComparison(t *testing.T) {
	pred, err := Compile("downstream_invoke_failures > 50")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if pred(map[string]float64{"downstream_invoke_failures": 51}) != true {
		t.Error("expected 51 > 50 to be true")
	}
	if pred(map[string]float64{"downstream_invoke_failures": 50}) != false {
		t.Error("expected 50 > 50 to be false")
	}
}

func TestCompileUnknownIdentDefaultsToZero(t *testing.T) {
	pred, err := Compile("missing_metric > 0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if pred(map[string]float64{}) {
		t.Error("expected an unknown identifier to evaluate as 0")
	}
}

func TestCompileLogicalAndOr(t *testing.T) {
	pred, err := Compile("permission_denials > 5 && disconnects > 10")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if pred(map[string]float64{"permission_denials": 6, "disconnects": 5}) {
		t.Error("expected && to require both sides true")
	}
	if !pred(map[string]float64{"permission_denials": 6, "disconnects": 11}) {
		t.Error("expected && to be true when both sides hold")
	}

	orPred, err := Compile("permission_denials > 5 || disconnects > 10")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !orPred(map[string]float64{"permission_denials": 0, "disconnects": 11}) {
		t.Error("expected || to be true when one side holds")
	}
}

func TestCompileArithmeticAndDivisionByZeroIsSafe(t *testing.T) {
	pred, err := Compile("(downstream_invoke_failures / dispatched_requests) > 0.2")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	// dispatched_requests == 0 must not panic; divide-by-zero evaluates to 0.
	if pred(map[string]float64{"downstream_invoke_failures": 10, "dispatched_requests": 0}) {
		t.Error("expected divide-by-zero to evaluate to 0, not satisfy > 0.2")
	}
	if !pred(map[string]float64{"downstream_invoke_failures": 30, "dispatched_requests": 100}) {
		t.Error("expected 30/100 = 0.3 > 0.2 to be true")
	}
}

func TestCompileUnaryNegationAndNot(t *testing.T) {
	pred, err := Compile("-latency < 0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !pred(map[string]float64{"latency": 5}) {
		t.Error("expected -5 < 0 to be true")
	}

	notPred, err := Compile("!healthy")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if notPred(map[string]float64{"healthy": 1}) {
		t.Error("expected !1 to be false")
	}
	if !notPred(map[string]float64{"healthy": 0}) {
		t.Error("expected !0 to be true")
	}
}

func TestCompileParenthesesOverridePrecedence(t *testing.T) {
	pred, err := Compile("(a + b) * c > 10")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !pred(map[string]float64{"a": 2, "b": 3, "c": 3}) {
		t.Error("expected (2+3)*3 = 15 > 10 to be true")
	}
}

func TestCompileSyntaxErrorOnTrailingGarbage(t *testing.T) {
	_, err := Compile("1 + 1 )")
	if err == nil {
		t.Fatal("expected a syntax error on unconsumed trailing input")
	}
}

func TestCompileSyntaxErrorOnEmptyExpression(t *testing.T) {
	_, err := Compile("")
	if err == nil {
		t.Fatal("expected a syntax error for an empty expression")
	}
}

func TestCompileSyntaxErrorOnUnbalancedParen(t *testing.T) {
	_, err := Compile("(1 + 1")
	if err == nil {
		t.Fatal("expected a syntax error for an unbalanced paren")
	}
}

func TestCompileNodeLimitRejectsOversizedExpressions(t *testing.T) {
	expr := "a"
	for i := 0; i < 300; i++ {
		expr += " + a"
	}
	_, err := Compile(expr)
	if err == nil {
		t.Fatal("expected an error for an expression exceeding the AST node limit")
	}
}

func TestCompileEqualityOperators(t *testing.T) {
	eq, err := Compile("a == 5")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !eq(map[string]float64{"a": 5}) {
		t.Error("expected 5 == 5 to be true")
	}

	neq, err := Compile("a != 5")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !neq(map[string]float64{"a": 4}) {
		t.Error("expected 4 != 5 to be true")
	}
}
