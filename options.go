package slidesmith

import "github.com/tsawler/slidesmith/font"

// editOptions holds configuration for editing operations.
type editOptions struct {
	// Font measurement (nil means heuristic sizing)
	fonts *font.Cache

	// Auto-fit size bounds in points (0 means the autofit defaults,
	// 10 and 44)
	minSize float64
	maxSize float64
}

// defaultOptions returns the default edit options.
func defaultOptions() editOptions {
	return editOptions{
		fonts:   nil, // no cache: character-count heuristic sizing
		minSize: 0,
		maxSize: 0,
	}
}

// clone creates a copy of editOptions. The font cache is shared by
// reference; it is safe for concurrent use.
func (o editOptions) clone() editOptions {
	return editOptions{
		fonts:   o.fonts,
		minSize: o.minSize,
		maxSize: o.maxSize,
	}
}
