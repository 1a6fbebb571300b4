package lexical

import "testing"

func TestValidateSetA_NotASetACommand(t *testing.T) {
	if _, ok := ValidateSetA(`echo hello`); ok {
		t.Fatalf("expected ok=false for a non-SET/A line")
	}
}

func TestValidateSetA_Valid(t *testing.T) {
	cases := []string{
		`SET /A x=1+2`,
		`set /a count+=1`,
		`SET /A "result = (a + b) * c"`,
		`SET /A x=1`,
		`SET /A y=0x1F`,
	}
	for _, line := range cases {
		res, ok := ValidateSetA(line)
		if !ok {
			t.Fatalf("%q: expected ok=true", line)
		}
		if res.Code != "" {
			t.Fatalf("%q: expected no error, got %s", line, res.Code)
		}
	}
}

func TestValidateSetA_UnbalancedParens(t *testing.T) {
	res, ok := ValidateSetA(`SET /A x=(1+2`)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Code != "E021" {
		t.Fatalf("expected E021, got %q", res.Code)
	}
}

func TestValidateSetA_EmptyExpression(t *testing.T) {
	res, ok := ValidateSetA(`SET /A `)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Code != "E022" {
		t.Fatalf("expected E022, got %q", res.Code)
	}
}

func TestValidateSetA_RestrictedOperator(t *testing.T) {
	res, ok := ValidateSetA(`SET /A x=1^2`)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Code != "E023" {
		t.Fatalf("expected E023, got %q", res.Code)
	}
}

func TestValidateSetA_MultipleAssignments(t *testing.T) {
	res, ok := ValidateSetA(`SET /A x=1, y=2`)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Code != "E029" {
		t.Fatalf("expected E029, got %q", res.Code)
	}
}

func TestValidateSetA_InvalidOperatorRun(t *testing.T) {
	cases := []string{
		`SET /A x=1<2`,
		`SET /A x=1>2`,
		`SET /A x=1+`,
	}
	for _, line := range cases {
		res, ok := ValidateSetA(line)
		if !ok {
			t.Fatalf("%q: expected ok=true", line)
		}
		if res.Code != "E022" {
			t.Fatalf("%q: expected E022, got %q", line, res.Code)
		}
	}
}

func TestValidateSetA_CompoundOperatorsDoNotFalselyTrigger(t *testing.T) {
	cases := []string{
		`SET /A x<<=2`,
		`SET /A x>>=2`,
		`SET /A x+=1`,
		`SET /A x-=1`,
	}
	for _, line := range cases {
		res, ok := ValidateSetA(line)
		if !ok {
			t.Fatalf("%q: expected ok=true", line)
		}
		if res.Code == "E023" {
			continue
		}
		if res.Code != "" {
			t.Fatalf("%q: expected no error, got %s", line, res.Code)
		}
	}
}

func TestValidateSetA_UnaryChainsAreNotFalselyRejected(t *testing.T) {
	// Binary operator followed by a unary +/- (e.g. "add negative two") is
	// legal SET /A syntax; the operator-run check must not reject it even
	// though it can't tell unary from binary usage on its own.
	res, ok := ValidateSetA(`SET /A x=1+-2`)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if res.Code != "" {
		t.Fatalf("expected no error, got %s", res.Code)
	}
}

func TestOperatorRunDecomposes(t *testing.T) {
	valid := []string{"+", "-", "*=", "<<=", ">>", "=", "<<", "&="}
	for _, op := range valid {
		if !operatorRunDecomposes(op) {
			t.Fatalf("expected %q to decompose", op)
		}
	}
	invalid := []string{"<", ">", "<<<", ">><"}
	for _, op := range invalid {
		if operatorRunDecomposes(op) {
			t.Fatalf("expected %q to not decompose", op)
		}
	}
}
