package pagination

import "strconv"

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 20
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds page/size pagination inputs from controllers or clients.
type Params struct {
	Page int
	Size int
}

// Normalize enforces the configured default and maximum sizes.
func Normalize(p Params) Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// FromQuery parses raw page/size query values, falling back to defaults.
func FromQuery(pageRaw, sizeRaw string) Params {
	page, err := strconv.Atoi(pageRaw)
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil {
		size = DefaultSize
	}
	return Normalize(Params{Page: page, Size: size})
}

// TotalPages derives the page count for the given element total.
func TotalPages(totalElements int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := totalElements / int64(size)
	if totalElements%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
