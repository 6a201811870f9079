package pagination

const (
	PageDefaultSize = 100
	PageMaxSize     = 10_000
)

// OffsetRequest is a 1-based page request as bound from query parameters.
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize replaces out-of-range values with defaults and caps the size.
func (r OffsetRequest) Normalize() OffsetRequest {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	r.Size = min(r.Size, PageMaxSize)
	return r
}

func (r OffsetRequest) offset() int {
	return (r.Page - 1) * r.Size
}

type OffsetResult[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"hasMore"`
}

// Paginate slices one page out of an in-memory list. A page past the end is
// empty, never nil.
func Paginate[T any](all []T, req OffsetRequest) OffsetResult[T] {
	req = req.Normalize()
	start := min(req.offset(), len(all))
	end := min(start+req.Size, len(all))

	items := make([]T, end-start)
	copy(items, all[start:end])
	return OffsetResult[T]{
		Items:   items,
		Total:   len(all),
		Page:    req.Page,
		Size:    req.Size,
		HasMore: end < len(all),
	}
}
