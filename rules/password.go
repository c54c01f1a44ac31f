package rules

import "strings"

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// CheckItem is one entry of the password requirement checklist.
type CheckItem struct {
	ID     string
	Label  string
	Passed bool
}

type passwordRule struct {
	id    string
	label string
	check func(value string) bool
}

// The five sub-rules are evaluated independently so callers can render a
// per-rule checklist instead of a single pass/fail.
var passwordRules = []passwordRule{
	{
		id:    "length",
		label: "At least 8 characters",
		check: func(value string) bool { return len(value) >= 8 },
	},
	{
		id:    "uppercase",
		label: "One uppercase letter",
		check: func(value string) bool { return strings.ContainsFunc(value, isUpper) },
	},
	{
		id:    "lowercase",
		label: "One lowercase letter",
		check: func(value string) bool { return strings.ContainsFunc(value, isLower) },
	},
	{
		id:    "number",
		label: "One number",
		check: func(value string) bool { return strings.ContainsFunc(value, isDigit) },
	},
	{
		id:    "special",
		label: "One special character (!@#$%^&*)",
		check: func(value string) bool { return strings.ContainsAny(value, passwordSymbols) },
	},
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// PasswordChecklist evaluates all five password sub-rules against value and
// returns one entry per rule in declaration order.
//
// PasswordChecklist does not mutate shared global state and can be used concurrently.
func PasswordChecklist(value string) []CheckItem {
	items := make([]CheckItem, 0, len(passwordRules))
	for _, r := range passwordRules {
		items = append(items, CheckItem{
			ID:     r.id,
			Label:  r.label,
			Passed: r.check(value),
		})
	}
	return items
}

// PasswordValid reports whether value passes every password sub-rule.
func PasswordValid(value string) bool {
	for _, r := range passwordRules {
		if !r.check(value) {
			return false
		}
	}
	return true
}
