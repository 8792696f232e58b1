package common

import (
	"strings"
	"unicode"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// ToSnake converts an identifier to snake_case.
// Examples: "Initialize" -> "initialize", "CreateVault" -> "create_vault",
// "HTTPProxy" -> "http_proxy".
func ToSnake(ident string) string {
	runes := []rune(ident)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

				if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
					sb.WriteByte('_')
				}
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
