package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDeriveStatus(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := rapid.IntRange(0, 1000).Draw(t, "quantity")
		th := rapid.IntRange(0, 1000).Draw(t, "threshold")

		s := DeriveStatus(q, th)
		if (s == StatusOutOfStock) != (q == 0) {
			t.Fatalf("out-of-stock mismatch for q=%d t=%d: %s", q, th, s)
		}
		if (s == StatusLowStock) != (q > 0 && q <= th) {
			t.Fatalf("low-stock mismatch for q=%d t=%d: %s", q, th, s)
		}
		if (s == StatusInStock) != (q > th) {
			t.Fatalf("in-stock mismatch for q=%d t=%d: %s", q, th, s)
		}
	})
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{nil, DefaultLowStockThreshold},
		{"", DefaultLowStockThreshold},
		{"12", 12},
		{"0", 0},
		{"-3", DefaultLowStockThreshold},
		{"abc", DefaultLowStockThreshold},
		{" 9 ", 9},
		{"010", 10},
		{"0x10", DefaultLowStockThreshold},
		{"1e3", DefaultLowStockThreshold},
		{true, DefaultLowStockThreshold},
		{false, DefaultLowStockThreshold},
		{[]int{4}, DefaultLowStockThreshold},
		{float64(7), 7},
		{float64(-1), DefaultLowStockThreshold},
		{json.Number("6"), 6},
		{3, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseThreshold(tt.in), "input %#v", tt.in)
	}
}

func TestParseStockOutReason(t *testing.T) {
	r, ok := ParseStockOutReason("  Internal_Use ")
	require.True(t, ok)
	require.Equal(t, ReasonInternalUse, r)

	_, ok = ParseStockOutReason("borrowed")
	require.False(t, ok)

	s, ok := ParseStatus("low-stock")
	require.True(t, ok)
	require.Equal(t, StatusLowStock, s)
}
