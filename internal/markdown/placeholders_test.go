package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderToken(t *testing.T) {
	assert.Equal(t, "<!-- example hello -->", PlaceholderToken("hello"))
	assert.True(t, IsPlaceholder("  <!-- example hello -->\r\n", "hello"))
	assert.False(t, IsPlaceholder("<!-- example hello world -->", "hello"))
	assert.False(t, IsPlaceholder("text <!-- example hello -->", "hello"))
}

func TestFindPlaceholders(t *testing.T) {
	body := []byte(`# Lists

Lists are built with Cons.

<!-- example append -->

Some prose.
<!-- example length of list -->

` + "```" + `
<!-- example inside_code -->
` + "```" + `

<!-- a regular comment -->
`)

	got := FindPlaceholders(body)
	require.Len(t, got, 2)
	assert.Equal(t, Placeholder{Name: "append", Line: 5}, got[0])
	assert.Equal(t, Placeholder{Name: "length of list", Line: 8}, got[1])
}

func TestFindPlaceholders_Empty(t *testing.T) {
	assert.Empty(t, FindPlaceholders([]byte("# Title\n\nNo markers here.\n")))
}
