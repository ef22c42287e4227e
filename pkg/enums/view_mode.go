package enums

import "fmt"

// ViewMode is the product listing presentation preference.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

var validViewModes = []ViewMode{
	ViewModeGrid,
	ViewModeList,
}

// String implements fmt.Stringer.
func (v ViewMode) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ViewMode.
func (v ViewMode) IsValid() bool {
	for _, candidate := range validViewModes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseViewMode converts raw input into a ViewMode, defaulting to grid.
func ParseViewMode(value string) (ViewMode, error) {
	if value == "" {
		return ViewModeGrid, nil
	}
	for _, candidate := range validViewModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid view mode %q", value)
}
