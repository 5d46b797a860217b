package attribute

import (
	"fmt"
	"strings"

	"github.com/stoewer/go-strcase"
)

// KeyCase selects how field and relationship names are written on the wire.
type KeyCase string

const (
	// KeyCaseNone writes names unchanged.
	KeyCaseNone KeyCase = "none"

	// KeyCaseCamel writes names as lowerCamelCase ("first_name" -> "firstName").
	KeyCaseCamel KeyCase = "camel"

	// KeyCaseSnake writes names as snake_case ("firstName" -> "first_name").
	KeyCaseSnake KeyCase = "snake"

	// KeyCaseDash writes names as dash-case ("firstName" -> "first-name").
	KeyCaseDash KeyCase = "dash"
)

// String returns the string representation of the key case.
func (k KeyCase) String() string {
	return string(k)
}

// IsValid returns true if the key case is one of the defined constants.
func (k KeyCase) IsValid() bool {
	switch k {
	case KeyCaseNone, KeyCaseCamel, KeyCaseSnake, KeyCaseDash:
		return true
	default:
		return false
	}
}

// ParseKeyCase parses a string into a KeyCase. The empty string maps to
// KeyCaseNone.
func ParseKeyCase(s string) (KeyCase, error) {
	if s == "" {
		return KeyCaseNone, nil
	}
	k := KeyCase(strings.ToLower(s))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid key case: %s (must be one of: none, camel, snake, dash)", s)
	}
	return k, nil
}

// Transform rewrites name according to the key case. Acronyms stay
// together, so "HTTPServer" becomes "http_server".
func (k KeyCase) Transform(name string) string {
	switch k {
	case KeyCaseCamel:
		return strcase.LowerCamelCase(name)
	case KeyCaseSnake:
		return strcase.SnakeCase(name)
	case KeyCaseDash:
		return strcase.KebabCase(name)
	default:
		return name
	}
}
