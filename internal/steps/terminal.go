package steps

import (
	"strings"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

func init() {
	Register(catalog.StepTerminal, evaluateTerminal)
}

// evaluateTerminal passes when the trimmed input contains any expected
// command, case-insensitively. An empty expected list never matches.
func evaluateTerminal(data catalog.StepData, in Input) bool {
	input := strings.ToLower(strings.TrimSpace(in.Text))
	if input == "" {
		return false
	}
	return containsAnyFold(input, data.ExpectedCommands)
}

// containsAnyFold reports whether lowered contains any of the needles,
// case-insensitively. False for an empty needle list.
func containsAnyFold(lowered string, needles []string) bool {
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
