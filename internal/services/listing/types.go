package listing

import (
	"schooldb/internal/domain/school"
)

const (
	// MaxPage is the highest page the registry serves; it is not documented
	// upstream and requests past it fail.
	MaxPage         = 100
	DefaultPageSize = 10
)

// LoadErrorFormat is the user-facing message stored when a page fails to load
const LoadErrorFormat = "Страница %d временно недоступна. Попробуйте другую страницу."

// LoadRequest represents a page load intent from the UI
type LoadRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"count"`
	RegionID int    `json:"region_id,omitempty"`
	Append   bool   `json:"append,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Normalize fills defaults. Page is kept as requested; use EffectivePage for
// the value actually sent upstream.
func (req *LoadRequest) Normalize(defaultPageSize int) {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
}

// EffectivePage returns the requested page clamped into [1, MaxPage]
func (req LoadRequest) EffectivePage() int {
	return clamp(req.Page, 1, MaxPage)
}

// firstPage reports whether the request resets the list before dispatch
func (req LoadRequest) firstPage() bool {
	return !req.Append && req.Page == 1
}

// Pagination is the paging part of the list state
type Pagination struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
	PageSize    int `json:"page_size" yaml:"page_size"`
}

// State is a snapshot of a list session
type State struct {
	Pagination `yaml:",inline"`

	Loading bool   `json:"loading" yaml:"loading"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`

	Rows []school.Row `json:"rows" yaml:"rows"`
	// SearchRows accumulates every row loaded since the last first-page load
	SearchRows []school.Row `json:"search_rows" yaml:"search_rows"`

	CurrentRegion int    `json:"current_region,omitempty" yaml:"current_region,omitempty"`
	CurrentStatus string `json:"current_status,omitempty" yaml:"current_status,omitempty"`
	Generation    uint64 `json:"generation" yaml:"generation"`
	// Revision counts committed transitions, dispatch, settle and clear alike
	Revision uint64 `json:"revision" yaml:"revision"`
}

func (s State) clone() State {
	out := s
	out.Rows = append([]school.Row{}, s.Rows...)
	out.SearchRows = append([]school.Row{}, s.SearchRows...)
	return out
}

// TotalPagesFrom converts an upstream pages_count into a stored page total
func TotalPagesFrom(pagesCount int) int {
	return clamp(pagesCount, 1, MaxPage)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
