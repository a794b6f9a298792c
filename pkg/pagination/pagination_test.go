package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateClampsPageIntoValidRange(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i + 1
	}

	cases := []struct {
		name     string
		page     int
		wantPage int
		wantLen  int
	}{
		{"negative page degrades to first", -3, 1, 10},
		{"zero page degrades to first", 0, 1, 10},
		{"first page", 1, 1, 10},
		{"last page is partial", 3, 3, 3},
		{"page beyond range degrades to last", 99, 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, meta := Paginate(items, tc.page, 10)
			assert.Equal(t, tc.wantPage, meta.CurrentPage)
			assert.Equal(t, 3, meta.TotalPages)
			assert.Equal(t, int64(23), meta.TotalItems)
			assert.Len(t, got, tc.wantLen)
			assert.LessOrEqual(t, len(got), meta.Limit)
		})
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	got, meta := Paginate([]string{}, 4, 10)
	assert.Empty(t, got)
	assert.Equal(t, int64(0), meta.TotalItems)
	// An empty collection still reports one page, so the current page
	// stays within [1, TotalPages].
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.LessOrEqual(t, meta.CurrentPage, meta.TotalPages)
}

func TestPaginateSliceContents(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	got, meta := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, got)
	assert.Equal(t, 3, meta.TotalPages)
}

func pages(values ...int) []*int {
	out := make([]*int, len(values))
	for i, v := range values {
		if v == 0 {
			continue // gap marker
		}
		v := v
		out[i] = &v
	}
	return out
}

func TestPageNumbersCompression(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		want    []*int
	}{
		{"middle window with both gaps", 10, 20, pages(1, 0, 9, 10, 11, 0, 20)},
		{"near start widens the head window", 2, 20, pages(1, 2, 3, 4, 5, 0, 20)},
		{"near end widens the tail window", 19, 20, pages(1, 0, 16, 17, 18, 19, 20)},
		{"few pages lists everything", 3, 5, pages(1, 2, 3, 4, 5)},
		{"single page", 1, 1, pages(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PageNumbers(tc.current, tc.total, MaxVisible)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				if tc.want[i] == nil {
					assert.Nil(t, got[i], "position %d should be a gap", i)
					continue
				}
				require.NotNil(t, got[i], "position %d should be a page", i)
				assert.Equal(t, *tc.want[i], *got[i], "position %d", i)
			}
		})
	}
}

func TestPageNumbersAlwaysIncludeFirstAndLast(t *testing.T) {
	for current := -1; current <= 25; current++ {
		got := PageNumbers(current, 20, MaxVisible)
		require.NotEmpty(t, got)
		require.NotNil(t, got[0])
		require.NotNil(t, got[len(got)-1])
		assert.Equal(t, 1, *got[0])
		assert.Equal(t, 20, *got[len(got)-1])
	}
}
