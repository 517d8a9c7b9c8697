package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("q", true))

	err := Required("q", false)
	require.Error(t, err)
	assert.Equal(t, `Parameter "q" is required`, err.Error())

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindRequired, verr.Kind)
	assert.Equal(t, []string{"q"}, verr.Fields)
}

func TestPairRules(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"exclusive_ok_one", MutuallyExclusive("a", "b", true, false), ""},
		{"exclusive_both", MutuallyExclusive("a", "b", true, true), "Parameters a and b are mutually exclusive"},
		{"either_ok", EitherOr("a", "b", false, true), ""},
		{"either_none", EitherOr("a", "b", false, false), "Either a or b must be provided"},
		{"conditional_absent", Conditional("a", "b", false, false), ""},
		{"conditional_ok", Conditional("a", "b", true, true), ""},
		{"conditional_missing", Conditional("targetCode", "targetType", true, false),
			`Parameter "targetType" is required when "targetCode" is provided`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantMsg == "" {
				assert.NoError(t, tt.err)
				return
			}
			require.Error(t, tt.err)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestRange(t *testing.T) {
	lo, mid, hi := 0.05, 0.5, 0.95
	assert.NoError(t, Range[float64]("t", nil, 0.1, 0.9))
	assert.NoError(t, Range("t", &mid, 0.1, 0.9))
	assert.Error(t, Range("t", &lo, 0.1, 0.9))
	assert.Error(t, Range("t", &hi, 0.1, 0.9))

	edge := 0.1
	assert.NoError(t, Range("t", &edge, 0.1, 0.9))

	zero, big := 0, 500001
	assert.Error(t, Range("maxChildren", &zero, 1, 500000))
	assert.Error(t, Range("maxChildren", &big, 1, 500000))
}

func TestMax(t *testing.T) {
	ok, over := 5000, 5001
	assert.NoError(t, Max("radius", &ok, 5000))
	assert.NoError(t, Max[int]("radius", nil, 5000))
	err := Max("radius", &over, 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed 5000")
}

func TestLength(t *testing.T) {
	assert.NoError(t, Length("addressString", "10 Downing St", 5, 500))
	assert.Error(t, Length("addressString", "abc", 5, 500))
}

func TestPeriodsOrRange(t *testing.T) {
	assert.NoError(t, PeriodsOrRange("2024-01,2024-02", "", ""))
	assert.NoError(t, PeriodsOrRange("", "2024-01", "2024-06"))

	err := PeriodsOrRange("", "2024-01", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Either "periods" or both "startDate" and "endDate"`)

	err = PeriodsOrRange("2024-1", "", "")
	require.Error(t, err)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindFormat, verr.Kind)
}

func TestFirst(t *testing.T) {
	e1 := errors.New("one")
	assert.NoError(t, First(nil, nil))
	assert.Equal(t, e1, First(nil, e1, errors.New("two")))
}
