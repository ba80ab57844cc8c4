package models

import (
	"strings"
	"unicode"
)

// SplitAddress splits "<postal code> <city>" on the first whitespace run.
// Without whitespace the whole address is the postal code.
func SplitAddress(address *string) (postalCode, city *string) {
	if address == nil {
		return nil, nil
	}
	a := strings.TrimSpace(*address)
	if a == "" {
		return nil, nil
	}

	idx := strings.IndexFunc(a, unicode.IsSpace)
	if idx < 0 {
		return &a, nil
	}
	code := a[:idx]
	rest := strings.TrimLeftFunc(a[idx:], unicode.IsSpace)
	if rest == "" {
		return &code, nil
	}
	return &code, &rest
}
