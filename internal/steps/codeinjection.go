package steps

import (
	"strings"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

func init() {
	Register(catalog.StepCodeInjection, evaluateCodeInjection)
}

// evaluateCodeInjection passes when the submitted payload contains the
// expected payload, case-insensitively.
func evaluateCodeInjection(data catalog.StepData, in Input) bool {
	if data.ExpectedPayload == "" {
		return false
	}
	return strings.Contains(strings.ToLower(in.Text), strings.ToLower(data.ExpectedPayload))
}
