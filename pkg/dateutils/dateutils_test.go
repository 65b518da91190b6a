package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	full, err := ParseString("2024-02-06T18:29:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 6, 18, 29, 0, 0, time.UTC), full)

	day, err := ParseString("2024-02-06")
	require.NoError(t, err)
	assert.Equal(t, 6, day.Day())

	_, err = ParseString("06 Feb 2024")
	assert.ErrorIs(t, err, ErrUnsupportedDateFormat)
}

func TestPretify(t *testing.T) {
	assert.Equal(t, "February 6, 2024", Pretify(time.Date(2024, time.February, 6, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", Pretify(time.Time{}))
	assert.Equal(t, "March 1, 2023", PretifyString("2023-03-01T00:00:00Z"))
	assert.Equal(t, "", PretifyString("soon"))
}
