package steps

import (
	"strings"
	"testing"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

func TestTerminalSubstringMatch(t *testing.T) {
	data := catalog.StepData{ExpectedCommands: []string{"sqlmap", "--dump"}}

	cases := []struct {
		input string
		want  bool
	}{
		{"please run sqlmap now", true},
		{"SQLMAP -u http://target", true}, // case-insensitive
		{"  nmap -sV  ", false},
		{"--dump everything", true},
		{"", false},
		{"   ", false},
	}

	for _, tc := range cases {
		got := Evaluate(catalog.Step{Type: catalog.StepTerminal, Data: data}, Input{Text: tc.input})
		if got != tc.want {
			t.Errorf("terminal(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTerminalEmptyExpectedListNeverMatches(t *testing.T) {
	step := catalog.Step{Type: catalog.StepTerminal, Data: catalog.StepData{}}
	if Evaluate(step, Input{Text: "anything"}) {
		t.Error("Empty expected command list must never match")
	}
}

func TestWebLoginSQLi(t *testing.T) {
	step := catalog.Step{Type: catalog.StepWebLogin, Data: catalog.StepData{
		Vulnerability:   VulnSQLi,
		ExpectedPayload: "' OR 1=1 --",
	}}

	if !Evaluate(step, Input{Username: "admin", Password: "' OR 1=1 --"}) {
		t.Error("SQLi payload in password field should pass")
	}
	if !Evaluate(step, Input{Username: "admin' OR 1=1 --", Password: "x"}) {
		t.Error("SQLi payload in username field should pass")
	}
	if Evaluate(step, Input{Username: "admin", Password: "hunter2"}) {
		t.Error("Plain credentials should not pass")
	}
}

func TestWebLoginWeakPassword(t *testing.T) {
	step := catalog.Step{Type: catalog.StepWebLogin, Data: catalog.StepData{
		Vulnerability:   VulnWeakPassword,
		ExpectedPayload: "admin123",
	}}

	if !Evaluate(step, Input{Password: "admin123"}) {
		t.Error("Exact password should pass")
	}
	if Evaluate(step, Input{Password: "admin1234"}) {
		t.Error("Superstring must not pass an exact-match check")
	}
}

func TestWebLoginBruteForce(t *testing.T) {
	step := catalog.Step{Type: catalog.StepWebLogin, Data: catalog.StepData{
		Vulnerability:   VulnBruteForce,
		ExpectedPayload: "letmein",
	}}

	if Evaluate(step, Input{Password: "letmein", Attempts: 0}) {
		t.Error("Correct password must not pass before 3 attempts")
	}
	if Evaluate(step, Input{Password: "letmein", Attempts: 2}) {
		t.Error("Correct password must not pass at 2 attempts")
	}
	if !Evaluate(step, Input{Password: "letmein", Attempts: 3}) {
		t.Error("Correct password should pass at 3 attempts")
	}
	if Evaluate(step, Input{Password: "wrong", Attempts: 10}) {
		t.Error("Wrong password never passes")
	}
}

func TestWebLoginUnknownTagFallsBackToContainment(t *testing.T) {
	step := catalog.Step{Type: catalog.StepWebLogin, Data: catalog.StepData{
		Vulnerability:   "xss-reflected",
		ExpectedPayload: "<script>alert('XSS')</script>",
	}}

	if !Evaluate(step, Input{Username: "<script>alert('XSS')</script>"}) {
		t.Error("Unknown vulnerability tag should fall back to payload containment")
	}
	if Evaluate(step, Input{Username: "admin", Password: "x"}) {
		t.Error("No payload should not pass")
	}
}

func TestCodeInjectionCaseInsensitive(t *testing.T) {
	step := catalog.Step{Type: catalog.StepCodeInjection, Data: catalog.StepData{
		ExpectedPayload: "; cat /etc/passwd",
	}}

	if !Evaluate(step, Input{Text: "127.0.0.1; CAT /etc/passwd"}) {
		t.Error("Case-insensitive containment should pass")
	}
	if Evaluate(step, Input{Text: "127.0.0.1"}) {
		t.Error("Benign input should not pass")
	}
}

func TestMultipleChoice(t *testing.T) {
	step := catalog.Step{Type: catalog.StepMultipleChoice, Data: catalog.StepData{
		Options: []string{"a", "b", "c", "d"},
		Correct: 1,
	}}

	if Evaluate(step, Input{Option: 2}) {
		t.Error("Wrong option should not pass")
	}
	if !Evaluate(step, Input{Option: 1}) {
		t.Error("Correct option should pass")
	}
	if Evaluate(step, Input{Option: -1}) || Evaluate(step, Input{Option: 4}) {
		t.Error("Out-of-range option should not pass")
	}
}

func TestFreeInputMinLength(t *testing.T) {
	step := catalog.Step{Type: catalog.StepFreeInput, Data: catalog.StepData{
		MinLength: 100,
		Keywords:  []string{"malware", "containment"},
	}}

	short := strings.Repeat("x", 60)
	if Evaluate(step, Input{Text: short}) {
		t.Error("60 chars with no keywords must not pass a 100-char minimum")
	}

	long := strings.Repeat("x", 100)
	if !Evaluate(step, Input{Text: long}) {
		t.Error("100 chars should satisfy the minimum length clause")
	}
}

func TestFreeInputClausesAreORed(t *testing.T) {
	step := catalog.Step{Type: catalog.StepFreeInput, Data: catalog.StepData{
		MinLength:      100,
		Keywords:       []string{"remediation"},
		CorrectAnswers: []string{"defense in depth"},
	}}

	if !Evaluate(step, Input{Text: "apply Remediation steps"}) {
		t.Error("Keyword clause alone should pass")
	}
	if !Evaluate(step, Input{Text: "use Defense In Depth"}) {
		t.Error("Correct-answer clause alone should pass")
	}
}

func TestFreeInputEmptyListsNeverVacuouslyTrue(t *testing.T) {
	// Keywords configured but empty: that clause must be false, not
	// trivially satisfied.
	step := catalog.Step{Type: catalog.StepFreeInput, Data: catalog.StepData{
		MinLength: 100,
		Keywords:  []string{},
	}}
	if Evaluate(step, Input{Text: "short answer"}) {
		t.Error("Empty keyword list must not vacuously pass")
	}

	// No clauses at all: nothing can pass.
	none := catalog.Step{Type: catalog.StepFreeInput, Data: catalog.StepData{}}
	if Evaluate(none, Input{Text: strings.Repeat("x", 500)}) {
		t.Error("A step with no configured clauses must never pass")
	}
}

func TestAllCatalogStepTypesSupported(t *testing.T) {
	for _, st := range []catalog.StepType{
		catalog.StepTerminal,
		catalog.StepWebLogin,
		catalog.StepCodeInjection,
		catalog.StepMultipleChoice,
		catalog.StepFreeInput,
	} {
		if !Supported(st) {
			t.Errorf("Step type %q has no evaluator", st)
		}
	}

	if Supported("telepathy") {
		t.Error("Unknown step type must not be supported")
	}
	if Evaluate(catalog.Step{Type: "telepathy"}, Input{Text: "x"}) {
		t.Error("Unknown step type must never pass")
	}
}
