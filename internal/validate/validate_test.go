package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcraske/simpleCalendar/internal/apperr"
)

func TestCollect_NoErrors(t *testing.T) {
	assert.NoError(t, Collect(nil, Required("a", "x"), nil))
}

func TestCollect_Errors(t *testing.T) {
	err := Collect(
		Required("name", "  "),
		Length("description", strings.Repeat("x", 256), 0, 255),
		MinInt("skip", -1, 0),
		MaxInt("limit", 101, 100),
		RequiredTime("start_date", time.Time{}),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))

	var errs Errs
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 5)
	assert.Equal(t, "name", errs[0].Field)
	assert.Contains(t, err.Error(), "limit: must be <= 100")
}

func TestLength_CountsRunes(t *testing.T) {
	assert.Nil(t, Length("name", "日本語", 1, 3))
	assert.NotNil(t, Length("name", "", 1, 3))
	assert.NotNil(t, Length("name", "日本語x", 1, 3))
}
