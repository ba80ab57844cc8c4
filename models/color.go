package models

import (
	"strconv"
	"strings"

	"github.com/camden-git/personsbackend/apperrors"
)

const (
	ColorBlue      = 1
	ColorGreen     = 2
	ColorViolet    = 3
	ColorRed       = 4
	ColorYellow    = 5
	ColorTurquoise = 6
	ColorWhite     = 7

	MinColorID = ColorBlue
	MaxColorID = ColorWhite

	// UnknownColorName labels stored ids that fall outside the catalog.
	UnknownColorName = "unbekannt"
)

// colorNames is indexed by id-1. The order is part of the data format.
var colorNames = [...]string{
	"blau",
	"grün",
	"violett",
	"rot",
	"gelb",
	"türkis",
	"weiß",
}

// ColorNames returns the canonical color names ordered by id.
func ColorNames() []string {
	names := make([]string, len(colorNames))
	copy(names, colorNames[:])
	return names
}

// ColorName returns the canonical name for id. Ids outside the catalog come
// from already stored data and get UnknownColorName instead of an error.
func ColorName(id int) string {
	if id < MinColorID || id > MaxColorID {
		return UnknownColorName
	}
	return colorNames[id-1]
}

// ColorID resolves a color name case-insensitively.
func ColorID(name string) (int, error) {
	needle := strings.TrimSpace(name)
	for i, n := range colorNames {
		if strings.EqualFold(n, needle) {
			return i + 1, nil
		}
	}
	return 0, &apperrors.ColorNotFoundError{Input: name, ValidNames: ColorNames()}
}

// ValidateColorID fails for any id outside 1..7.
func ValidateColorID(id int) error {
	if id < MinColorID || id > MaxColorID {
		return &apperrors.ColorNotFoundError{Input: strconv.Itoa(id), ValidNames: ColorNames()}
	}
	return nil
}

// ResolveColor accepts either a numeric id or a color name.
func ResolveColor(input string) (int, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		if err := ValidateColorID(id); err != nil {
			return 0, err
		}
		return id, nil
	}
	return ColorID(input)
}
