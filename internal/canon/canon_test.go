package canon

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	got, err := Expand(Canon{{"A", 2}, {"B", 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A 1", "A 2", "B 1"}, got)
}

func TestExpandDuplicatesRepeatRuns(t *testing.T) {
	got, err := Expand(Canon{{"A", 1}, {"A", 2}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A 1", "A 1", "A 2"}, got)
}

func TestExpandRejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := Expand(Canon{{"A", 1}, {"B", n}})
		var ibe *InvalidBookError
		require.True(t, errors.As(err, &ibe), "count %d", n)
		assert.Equal(t, 1, ibe.Index)
		assert.Equal(t, "B", ibe.Name)
	}
}

func TestExpandEmpty(t *testing.T) {
	got, err := Expand(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuiltinCanons(t *testing.T) {
	for name, c := range map[string]Canon{"abbreviated": Abbreviated(), "full": Full()} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, c, 66)
			assert.Equal(t, 1189, c.Total())

			flat, err := Expand(c)
			require.NoError(t, err)
			assert.Len(t, flat, c.Total())

			// every book contributes a contiguous 1..count run
			pos := 0
			for _, b := range c {
				for n := 1; n <= b.Chapters; n++ {
					assert.Equal(t, b.Name+" "+strconv.Itoa(n), flat[pos])
					pos++
				}
			}
		})
	}
}

func TestFullMatchesAbbreviatedShape(t *testing.T) {
	abbr, full := Abbreviated(), Full()
	require.Len(t, full, len(abbr))
	for i := range abbr {
		assert.Equal(t, abbr[i].Chapters, full[i].Chapters, "book %d", i)
		assert.False(t, strings.HasSuffix(full[i].Name, "."), full[i].Name)
	}
}
