package steps

import (
	"strings"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

func init() {
	Register(catalog.StepFreeInput, evaluateFreeInput)
}

// evaluateFreeInput passes when any configured clause does: a correct-answer
// substring match, the minimum-length requirement, or a keyword match. The
// clauses are ORed across whichever fields the step configures; an empty
// configured list is a clause that never matches, and a step with no clauses
// at all never passes.
func evaluateFreeInput(data catalog.StepData, in Input) bool {
	if strings.TrimSpace(in.Text) == "" {
		return false
	}
	lowered := strings.ToLower(in.Text)

	if containsAnyFold(lowered, data.CorrectAnswers) {
		return true
	}
	if data.MinLength > 0 && len(in.Text) >= data.MinLength {
		return true
	}
	if containsAnyFold(lowered, data.Keywords) {
		return true
	}
	return false
}
