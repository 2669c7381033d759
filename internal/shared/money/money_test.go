package money

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
		want      string
	}{
		{name: "whole_number", input: "100", want: "100.00"},
		{name: "two_decimals", input: "99.99", want: "99.99"},
		{name: "one_decimal", input: "10.5", want: "10.50"},
		{name: "third_digit_is_zero", input: "10.120", want: "10.12"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "surrounding_whitespace", input: " 42.00 ", want: "42.00"},
		{name: "negative", input: "-1.00", expectErr: true},
		{name: "three_decimals", input: "1.999", expectErr: true},
		{name: "not_a_number", input: "ten", expectErr: true},
		{name: "empty", input: "", expectErr: true},
		{name: "float_artifact", input: "0.1000000000000001", expectErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := Parse(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidAmount), "expected ErrInvalidAmount, got: %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, m.String())
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	a := MustParse("100.00")
	b := MustParse("100.01")

	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(MustParse("100")))

	require.True(t, b.GreaterThan(a))
	require.False(t, a.GreaterThan(b))
	// strict comparison: equal amounts are not greater
	require.False(t, a.GreaterThan(MustParse("100.00")))

	require.True(t, a.Equal(MustParse("100")))
}

func TestAdd(t *testing.T) {
	t.Parallel()

	sum := MustParse("0.10").Add(MustParse("0.20"))
	require.Equal(t, "0.30", sum.String())
	require.True(t, sum.Equal(MustParse("0.30")))

	require.True(t, Zero().IsZero())
	require.Equal(t, "5.25", Zero().Add(MustParse("5.25")).String())
}

func TestJSON(t *testing.T) {
	t.Parallel()

	m := MustParse("19.9")
	data, err := m.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"19.90"`, string(data))

	var parsed Money
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"19.90"`)))
	require.True(t, m.Equal(parsed))

	require.NoError(t, parsed.UnmarshalJSON([]byte(`42.5`)))
	require.Equal(t, "42.50", parsed.String())

	require.Error(t, parsed.UnmarshalJSON([]byte(`"-3.00"`)))
}

func TestScan(t *testing.T) {
	t.Parallel()

	var m Money
	require.NoError(t, m.Scan("150.00"))
	require.Equal(t, "150.00", m.String())

	require.NoError(t, m.Scan([]byte("7.25")))
	require.Equal(t, "7.25", m.String())

	require.Error(t, m.Scan("-10.00"))
}
