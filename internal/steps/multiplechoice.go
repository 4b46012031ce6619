package steps

import "github.com/cybercop-labs/cybercop/internal/catalog"

func init() {
	Register(catalog.StepMultipleChoice, evaluateMultipleChoice)
}

// evaluateMultipleChoice passes when the selected option index equals the
// configured correct index. Out-of-range selections never pass.
func evaluateMultipleChoice(data catalog.StepData, in Input) bool {
	if in.Option < 0 || in.Option >= len(data.Options) {
		return false
	}
	return in.Option == data.Correct
}
