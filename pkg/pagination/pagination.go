package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest addresses one page of a listing. Page is zero-based.
type PageRequest struct {
	Query string
	Page  int
	Size  int
}

// Normalize clamps the request into the range the listing service accepts.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	r.Size = min(r.Size, MaxPageSize)
	return r
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

type Page[T any] struct {
	Items         []T
	PageNumber    int
	PageSize      int
	TotalPages    int
	TotalElements int64
}

func TotalPages(totalElements int64, size int) int {
	if size <= 0 || totalElements <= 0 {
		return 0
	}
	return int((totalElements + int64(size) - 1) / int64(size))
}

// NewPage builds page metadata for items cut out of a result set of
// totalElements rows.
func NewPage[T any](items []T, req PageRequest, totalElements int64) Page[T] {
	return Page[T]{
		Items:         items,
		PageNumber:    req.Page,
		PageSize:      req.Size,
		TotalPages:    TotalPages(totalElements, req.Size),
		TotalElements: totalElements,
	}
}

// Slice cuts the requested page out of an already ordered result set.
func Slice[T any](all []T, req PageRequest) Page[T] {
	req = req.Normalize()
	total := int64(len(all))
	from := min(req.Offset(), len(all))
	to := min(from+req.Size, len(all))

	items := make([]T, to-from)
	copy(items, all[from:to])
	return NewPage(items, req, total)
}

// Clone returns a page that shares no item storage with p.
func (p Page[T]) Clone() Page[T] {
	if p.Items != nil {
		items := make([]T, len(p.Items))
		copy(items, p.Items)
		p.Items = items
	}
	return p
}

// SetTotal updates TotalElements and keeps TotalPages consistent with it.
func (p *Page[T]) SetTotal(totalElements int64) {
	if totalElements < 0 {
		totalElements = 0
	}
	p.TotalElements = totalElements
	p.TotalPages = TotalPages(totalElements, p.PageSize)
}

// DisplayPage turns a zero-based page index into the number shown on page
// controls.
func DisplayPage(page int) int {
	return page + 1
}

// FromDisplayPage is the inverse of DisplayPage.
func FromDisplayPage(display int) int {
	if display < 1 {
		return 0
	}
	return display - 1
}
