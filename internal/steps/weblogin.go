package steps

import (
	"strings"

	"github.com/cybercop-labs/cybercop/internal/catalog"
)

// Vulnerability tags understood by the web-login evaluator.
const (
	VulnSQLi         = "sqli"
	VulnWeakPassword = "weak-password"
	VulnBruteForce   = "brute-force"
)

func init() {
	Register(catalog.StepWebLogin, evaluateWebLogin)
}

// evaluateWebLogin judges a fake login form submit according to the step's
// vulnerability tag. Payload matching is case-sensitive: injection payloads
// carry significant casing.
func evaluateWebLogin(data catalog.StepData, in Input) bool {
	payload := data.ExpectedPayload
	if payload == "" {
		return false
	}

	switch data.Vulnerability {
	case VulnSQLi:
		return strings.Contains(in.Username, payload) || strings.Contains(in.Password, payload)
	case VulnWeakPassword:
		return in.Password == payload
	case VulnBruteForce:
		// Needs at least three prior attempts before the credential works.
		return in.Attempts >= 3 && in.Password == payload
	default:
		// Unknown tags fall back to containment so catalog steps with novel
		// tags stay completable.
		return strings.Contains(in.Username, payload) || strings.Contains(in.Password, payload)
	}
}
