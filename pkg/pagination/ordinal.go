package pagination

// Ordinal is the descending sequence number of the item at index on the
// given page: the newest row of the whole result set gets totalElements and
// the oldest gets 1. It is derived, so callers recompute it whenever
// totalElements changes.
func Ordinal(totalElements int64, pageNumber, pageSize, index int) int64 {
	return totalElements - int64(pageNumber*pageSize+index)
}

func (p Page[T]) Ordinal(index int) int64 {
	return Ordinal(p.TotalElements, p.PageNumber, p.PageSize, index)
}

// Ordinals returns the ordinal of every item on the page, in item order.
func (p Page[T]) Ordinals() []int64 {
	out := make([]int64, len(p.Items))
	for i := range p.Items {
		out[i] = p.Ordinal(i)
	}
	return out
}
