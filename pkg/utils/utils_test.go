package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/travian-go/pkg/utils"
)

func TestFormatHMS(t *testing.T) {
	assert.Equal(t, "00:00:00", utils.FormatHMS(0))
	assert.Equal(t, "00:01:05", utils.FormatHMS(65))
	assert.Equal(t, "20:00:00", utils.FormatHMS(72000))
	assert.Equal(t, "101:00:01", utils.FormatHMS(101*3600+1))
	assert.Equal(t, "00:00:00", utils.FormatHMS(-5))
}

func TestParseHMS(t *testing.T) {
	s, err := utils.ParseHMS("01:02:03")
	require.NoError(t, err)
	assert.Equal(t, 3723, s)

	s, err = utils.ParseHMS("12:30")
	require.NoError(t, err)
	assert.Equal(t, 750, s)

	// Bidi controls as rendered by the game UI.
	s, err = utils.ParseHMS("‭00:45:00‬")
	require.NoError(t, err)
	assert.Equal(t, 2700, s)

	_, err = utils.ParseHMS("oops")
	assert.Error(t, err)
}

func TestParseGameInt(t *testing.T) {
	n, err := utils.ParseGameInt("‭1.234.567‬")
	require.NoError(t, err)
	assert.Equal(t, 1234567, n)

	n, err = utils.ParseGameInt(" 12,345 ")
	require.NoError(t, err)
	assert.Equal(t, 12345, n)

	n, err = utils.ParseGameInt("−42")
	require.NoError(t, err)
	assert.Equal(t, -42, n)

	_, err = utils.ParseGameInt("")
	assert.Error(t, err)
}

func TestGenerateJobID(t *testing.T) {
	a := utils.GenerateJobID("build", 123)
	b := utils.GenerateJobID("build", 123)

	assert.Contains(t, a, "build-123-")
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("build-123-")+8)
}
