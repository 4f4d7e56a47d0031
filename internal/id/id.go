package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAccountRef returns an account reference like "0001-000007".
func FormatAccountRef(branch string, number int) string {
	return fmt.Sprintf("%s-%06d", branch, number)
}

// ParseAccountRef parses "0001-000007" into branch and number. A bare number
// such as "7" is accepted and yields an empty branch.
func ParseAccountRef(ref string) (branch string, number int, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", 0, fmt.Errorf("invalid account reference: %q", ref)
	}

	numPart := ref
	if i := strings.LastIndex(ref, "-"); i >= 0 {
		branch, numPart = ref[:i], ref[i+1:]
		if branch == "" || !IsDigits(branch) {
			return "", 0, fmt.Errorf("invalid branch in account reference %q", ref)
		}
	}

	number, err = strconv.Atoi(numPart)
	if err != nil {
		return "", 0, fmt.Errorf("invalid number in account reference %q: %w", ref, err)
	}
	if number <= 0 {
		return "", 0, fmt.Errorf("invalid number in account reference %q: must be positive", ref)
	}
	return branch, number, nil
}

// IsDigits reports whether s is a non-empty string of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
