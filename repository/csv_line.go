package repository

import (
	"strconv"
	"strings"

	"github.com/camden-git/personsbackend/models"
)

const (
	colLastName = iota
	colFirstName
	colAddress
	colColor
	colGroup
)

// LineParser turns one line of the persons file into a record.
// Malformed rows are skipped, never reported as errors.
type LineParser struct {
	// LegacyRowIDs reads exactly-3-column rows whose address ends in a
	// numeric token ("Lauterecken 4") as carrying an explicit id.
	LegacyRowIDs bool
}

// ParseLine returns the person on the given 1-based line, or false when the
// line holds no usable record.
func (lp LineParser) ParseLine(line string, lineNumber int) (models.Person, bool) {
	line = strings.TrimPrefix(line, "\ufeff")
	if strings.TrimSpace(line) == "" {
		return models.Person{}, false
	}

	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if field(parts, colLastName) == "" && field(parts, colFirstName) == "" {
		return models.Person{}, false
	}
	if len(parts) < 3 {
		return models.Person{}, false
	}

	p := models.Person{
		ID:        lineNumber,
		LastName:  models.StringPtr(parts[colLastName]),
		FirstName: models.StringPtr(parts[colFirstName]),
	}

	address := parts[colAddress]
	if lp.LegacyRowIDs && len(parts) == 3 {
		if id, rest, ok := splitTrailingID(address); ok {
			p.ID = id
			address = rest
		}
	}
	p.Address = models.StringPtr(address)

	if v, ok := ExtractInt(field(parts, colColor)); ok {
		p.Color = &v
	}
	if v, ok := ExtractInt(field(parts, colGroup)); ok {
		p.Group = &v
	}

	return p, true
}

// ExtractInt keeps every ASCII digit of s (plus a minus sign in first
// position) and parses the concatenation, so "3a2" yields 32.
func ExtractInt(s string) (int, bool) {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" || digits == "-" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func splitTrailingID(address string) (int, string, bool) {
	idx := strings.LastIndexByte(address, ' ')
	if idx <= 0 {
		return 0, "", false
	}
	token := address[idx+1:]
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, "", false
		}
	}
	id, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", false
	}
	return id, strings.TrimSpace(address[:idx]), true
}
