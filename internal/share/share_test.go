package share

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	t.Parallel()

	links := For("cat photo.png", "https://img.example.com/i/abc.png")

	require.Equal(t, "https://img.example.com/i/abc.png", links.DirectLink)
	require.Equal(t, "![cat photo.png](https://img.example.com/i/abc.png)", links.Markdown)
	require.Equal(t, "[img]https://img.example.com/i/abc.png[/img]", links.BBS)
	require.Equal(t, `<img src="https://img.example.com/i/abc.png" alt="cat photo.png" />`, links.HTML)
}
