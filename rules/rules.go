package rules

import (
	"regexp"
	"strings"
)

// Context carries the current trimmed values of sibling fields for cross-field
// rules. A nil Context is treated as empty.
type Context map[string]string

// Rule defines a public type used by authflow APIs.
//
// Rule instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Rule struct {
	ID        string
	Message   string
	Predicate func(value string, ctx Context) bool
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	alnumPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Evaluate runs the rule set in order against value and returns the first failing
// rule's message. ok is true when every rule passes.
//
// Evaluate does not mutate shared global state and can be used concurrently.
func Evaluate(set []Rule, value string, ctx Context) (ok bool, message string) {
	for _, r := range set {
		if !r.Predicate(value, ctx) {
			return false, r.Message
		}
	}
	return true, ""
}

// Required describes the required operation and its observable behavior.
//
// Required returns a rule that fails on values that are empty after trimming.
func Required(message string) Rule {
	return Rule{
		ID:      "required",
		Message: message,
		Predicate: func(value string, _ Context) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// Email returns a rule matching a simple local@domain.tld shape.
func Email(message string) Rule {
	return Rule{
		ID:      "email",
		Message: message,
		Predicate: func(value string, _ Context) bool {
			return emailPattern.MatchString(value)
		},
	}
}

// DigitsExactly returns a rule requiring value to be exactly n digits.
func DigitsExactly(n int, message string) Rule {
	return Rule{
		ID:      "digits",
		Message: message,
		Predicate: func(value string, _ Context) bool {
			return len(value) == n && digitsPattern.MatchString(value)
		},
	}
}

// Alphanumeric returns a rule requiring 1..max alphanumeric characters.
func Alphanumeric(max int, message string) Rule {
	return Rule{
		ID:      "alphanumeric",
		Message: message,
		Predicate: func(value string, _ Context) bool {
			return len(value) >= 1 && len(value) <= max && alnumPattern.MatchString(value)
		},
	}
}

// MatchesField returns a cross-field rule that fails unless value equals the
// sibling field named other in the evaluation context.
func MatchesField(other, message string) Rule {
	return Rule{
		ID:      "matches:" + other,
		Message: message,
		Predicate: func(value string, ctx Context) bool {
			if ctx == nil {
				return false
			}
			return value == ctx[other]
		},
	}
}

/*
====================================
FIELD RULE SETS
====================================
*/

// FullName is the rule set for the signup full-name field.
func FullName() []Rule {
	return []Rule{
		Required("Full name is required"),
	}
}

// EmailAddress is the rule set for email fields.
func EmailAddress() []Rule {
	return []Rule{
		Required("Email address is required"),
		Email("Please enter a valid email address"),
	}
}

// IDNumber is the rule set for the 13-digit national ID number.
func IDNumber() []Rule {
	return []Rule{
		Required("ID number is required"),
		DigitsExactly(13, "ID number must be exactly 13 digits"),
	}
}

// Cellphone is the rule set for the 10-digit cellphone number.
func Cellphone() []Rule {
	return []Rule{
		Required("Cellphone number is required"),
		DigitsExactly(10, "Cellphone number must be exactly 10 digits"),
	}
}

// AccountNumber is the structural rule set for the account/customer number.
// Existence of the account is confirmed separately by the remote lookup.
func AccountNumber() []Rule {
	return []Rule{
		Required("Account number is required"),
		Alphanumeric(20, "Account number must be 1-20 letters or digits"),
	}
}

// Password is the aggregate rule set for the signup password field. The five
// sub-rules remain individually reportable through [PasswordChecklist].
func Password() []Rule {
	return []Rule{
		Required("Password is required"),
		{
			ID:      "password-policy",
			Message: "Password does not meet the requirements",
			Predicate: func(value string, _ Context) bool {
				return PasswordValid(value)
			},
		},
	}
}

// ConfirmPassword is the rule set for the confirm-password field. It must be
// re-evaluated whenever either password value changes.
func ConfirmPassword(passwordField string) []Rule {
	return []Rule{
		Required("Please confirm your password"),
		MatchesField(passwordField, "Passwords do not match"),
	}
}
