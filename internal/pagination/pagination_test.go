package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("total pages is ceiling of items over per page", func(t *testing.T) {
		require.Equal(t, 1, New(1, 20, 20).TotalPages)
		require.Equal(t, 2, New(1, 21, 20).TotalPages)
		require.Equal(t, 5, New(1, 100, 20).TotalPages)
	})

	t.Run("empty listings still report one page", func(t *testing.T) {
		s := New(1, 0, 20)
		require.Equal(t, 1, s.TotalPages)
		require.Equal(t, 1, s.CurrentPage)
	})

	t.Run("current page is clamped into range", func(t *testing.T) {
		require.Equal(t, 1, New(0, 100, 20).CurrentPage)
		require.Equal(t, 5, New(9, 100, 20).CurrentPage)
	})

	t.Run("per page below one is normalized", func(t *testing.T) {
		s := New(1, 10, 0)
		require.Equal(t, 10, s.TotalPages)
	})
}

func TestCanGoTo(t *testing.T) {
	t.Parallel()

	s := New(3, 100, 20)

	require.True(t, s.CanGoTo(1))
	require.True(t, s.CanGoTo(5))
	require.False(t, s.CanGoTo(0))
	require.False(t, s.CanGoTo(6))
	require.True(t, s.HasPrevious())
	require.True(t, s.HasNext())

	first := New(1, 100, 20)
	require.False(t, first.HasPrevious())
	last := New(5, 100, 20)
	require.False(t, last.HasNext())
}

func TestWindow(t *testing.T) {
	t.Parallel()

	t.Run("five or fewer pages show everything", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, New(2, 60, 20).Window())
		require.Equal(t, []int{1, 2, 3, 4, 5}, New(4, 100, 20).Window())
	})

	t.Run("window clamps at the start", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3, 4, 5}, New(1, 200, 20).Window())
		require.Equal(t, []int{1, 2, 3, 4, 5}, New(3, 200, 20).Window())
	})

	t.Run("window clamps at the end", func(t *testing.T) {
		require.Equal(t, []int{6, 7, 8, 9, 10}, New(10, 200, 20).Window())
		require.Equal(t, []int{6, 7, 8, 9, 10}, New(8, 200, 20).Window())
	})

	t.Run("window centers on the current page in the middle", func(t *testing.T) {
		require.Equal(t, []int{3, 4, 5, 6, 7}, New(5, 200, 20).Window())
	})
}

func TestRangeAndVisibility(t *testing.T) {
	t.Parallel()

	t.Run("range covers the current page slice", func(t *testing.T) {
		s := New(2, 45, 20)
		require.Equal(t, 21, s.RangeStart())
		require.Equal(t, 40, s.RangeEnd())
	})

	t.Run("last page range is truncated to the total", func(t *testing.T) {
		s := New(3, 45, 20)
		require.Equal(t, 41, s.RangeStart())
		require.Equal(t, 45, s.RangeEnd())
	})

	t.Run("control hidden at one page", func(t *testing.T) {
		require.False(t, New(1, 20, 20).Visible())
		require.True(t, New(1, 21, 20).Visible())
	})
}
