package pagination

const (
	// DefaultPerPage is used when the caller does not ask for a page size.
	DefaultPerPage = 10
	// MaxPerPage caps the page size a caller can request.
	MaxPerPage = 100
)

// Meta describes one page of a listing.
type Meta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Normalize clamps page and perPage into the accepted range.
func Normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Offset returns the number of rows to skip for page. Inputs are expected to be normalized.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// NewMeta builds the page description for a listing of total rows.
func NewMeta(page, perPage, total int) Meta {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Meta{Page: page, PerPage: perPage, Total: total, Pages: pages}
}
