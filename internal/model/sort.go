package model

import (
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// SortField defines what to sort findings by.
type SortField int

const (
	SortByPath SortField = iota
	SortBySize
	SortByCount
	SortByDepth
)

// SortOrder defines ascending or descending.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// SortConfig holds sort preferences.
type SortConfig struct {
	Field SortField
	Order SortOrder
}

// DefaultSort returns the default sort config (natural path order).
func DefaultSort() SortConfig {
	return SortConfig{Field: SortByPath, Order: SortAsc}
}

// SortCycles sorts cycles in place according to config. Size and count have
// no meaning for cycles; both fall back to depth.
func SortCycles(cycles []Cycle, cfg SortConfig) {
	sort.SliceStable(cycles, func(i, j int) bool {
		a, b := cycles[i], cycles[j]
		if cfg.Order == SortDesc {
			a, b = b, a
		}
		switch cfg.Field {
		case SortBySize, SortByCount, SortByDepth:
			if a.Depth != b.Depth {
				return a.Depth < b.Depth
			}
			return pathLess(a.Link, b.Link)
		default:
			return pathLess(a.Link, b.Link)
		}
	})
}

// SortGroups sorts hardlink groups in place according to config.
func SortGroups(groups []LinkGroup, cfg SortConfig) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if cfg.Order == SortDesc {
			a, b = b, a
		}
		switch cfg.Field {
		case SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
			return groupPathLess(a, b)
		case SortByCount:
			if len(a.Paths) != len(b.Paths) {
				return len(a.Paths) < len(b.Paths)
			}
			return groupPathLess(a, b)
		default:
			return groupPathLess(a, b)
		}
	})
}

// SortGroupPaths orders the paths inside each group naturally, so reports
// are stable regardless of directory read order.
func SortGroupPaths(groups []LinkGroup) {
	for _, g := range groups {
		sort.SliceStable(g.Paths, func(i, j int) bool {
			return pathLess(g.Paths[i], g.Paths[j])
		})
	}
}

func groupPathLess(a, b LinkGroup) bool {
	if len(a.Paths) == 0 || len(b.Paths) == 0 {
		return len(a.Paths) > 0
	}
	return pathLess(a.Paths[0], b.Paths[0])
}

func pathLess(a, b string) bool {
	return natural.Less(strings.ToLower(a), strings.ToLower(b))
}
