package resource

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"page":     {"3"},
		"ordering": {"-deadline, title,"},
		"search":   {"  coal "},
		"category": {"goods", "works"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, q.Page)
	assert.Equal(t, []string{"-deadline", "title"}, q.Ordering)
	assert.Equal(t, "coal", q.Search)
	assert.Equal(t, map[string]string{"category": "works"}, q.Filters)
}

func TestParseQueryPages(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)

	q, err = ParseQuery(url.Values{"page": {"last"}})
	require.NoError(t, err)
	assert.Equal(t, -1, q.Page)

	for _, bad := range []string{"0", "-2", "two"} {
		_, err := ParseQuery(url.Values{"page": {bad}})
		assert.ErrorIs(t, err, ErrInvalidPage, bad)
	}
}

func TestPageNavigation(t *testing.T) {
	p := Page[int]{Count: 25, Number: 2, Size: 10}
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())

	p.Number = 3
	assert.False(t, p.HasNext())

	assert.Equal(t, 1, lastPage(0, 10))
	assert.Equal(t, 1, lastPage(10, 10))
	assert.Equal(t, 3, lastPage(21, 10))
}
