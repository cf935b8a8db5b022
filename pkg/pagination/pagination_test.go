package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrdinal_Law(t *testing.T) {
	t.Parallel()

	const total = 23
	all := make([]int, total)
	for i := range all {
		all[i] = i
	}

	seen := make(map[int64]bool, total)
	for _, size := range []int{1, 5, 10} {
		clear(seen)
		for page := 0; page < TotalPages(total, size); page++ {
			p := Slice(all, PageRequest{Page: page, Size: size})
			for i := range p.Items {
				ord := p.Ordinal(i)
				require.Equal(t, int64(total-(page*size+i)), ord)
				require.False(t, seen[ord], "duplicate ordinal %d", ord)
				seen[ord] = true
			}
		}
		require.Len(t, seen, total, "size=%d", size)
		require.True(t, seen[total], "newest has ordinal N")
		require.True(t, seen[1], "oldest has ordinal 1")
	}
}

func TestSlice_PartitionsWithoutGaps(t *testing.T) {
	t.Parallel()

	all := []string{"a", "b", "c", "d", "e", "f", "g"}
	var joined []string
	for page := 0; ; page++ {
		p := Slice(all, PageRequest{Page: page, Size: 3})
		if len(p.Items) == 0 {
			break
		}
		require.Equal(t, 3, p.TotalPages)
		require.Equal(t, int64(7), p.TotalElements)
		joined = append(joined, p.Items...)
	}
	require.Equal(t, all, joined)
}

func TestSlice_PastTheEnd(t *testing.T) {
	t.Parallel()

	p := Slice([]int{1, 2}, PageRequest{Page: 5, Size: 10})
	require.Empty(t, p.Items)
	require.Equal(t, 5, p.PageNumber)
	require.Equal(t, int64(2), p.TotalElements)
}

func TestPageRequest_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{name: "defaults", in: PageRequest{}, want: PageRequest{Size: DefaultPageSize}},
		{name: "negative page", in: PageRequest{Page: -3, Size: 5}, want: PageRequest{Size: 5}},
		{name: "too large", in: PageRequest{Page: 2, Size: 1000}, want: PageRequest{Page: 2, Size: MaxPageSize}},
		{name: "query kept", in: PageRequest{Query: "go", Page: 1, Size: 20}, want: PageRequest{Query: "go", Page: 1, Size: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestSetTotal_RecomputesOrdinals(t *testing.T) {
	t.Parallel()

	p := Page[string]{Items: []string{"x", "y"}, PageNumber: 1, PageSize: 2, TotalElements: 5, TotalPages: 3}
	require.Equal(t, []int64{3, 2}, p.Ordinals())

	p.SetTotal(4)
	require.Equal(t, 2, p.TotalPages)
	require.Equal(t, []int64{2, 1}, p.Ordinals())

	p.SetTotal(-1)
	require.Equal(t, int64(0), p.TotalElements)
	require.Equal(t, 0, p.TotalPages)
}

func TestDisplayPage(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, DisplayPage(0))
	require.Equal(t, 0, FromDisplayPage(1))
	require.Equal(t, 0, FromDisplayPage(0))
	require.Equal(t, 4, FromDisplayPage(DisplayPage(4)))
}

func TestClone_DoesNotShareItems(t *testing.T) {
	t.Parallel()

	p := Page[int]{Items: []int{1, 2, 3}}
	c := p.Clone()
	c.Items[0] = 42
	require.Equal(t, 1, p.Items[0])
}
