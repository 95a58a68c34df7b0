package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- FormatDate ----------

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"api timestamp", "2022-10-27 13:45:35.000000 +00:00", "2022-10-27"},
		{"iso timestamp", "2022-10-27T13:45:35Z", "2022-10-27"},
		{"plain date", "2022-10-27", "2022-10-27"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestFormatDate_DoesNotShiftDay(t *testing.T) {
	assert.NotEqual(t, "2022-10-28", FormatDate("2022-10-27 13:45:35.000000 +00:00"))
}

func TestReverseDate(t *testing.T) {
	assert.Equal(t, "02/06/2023", ReverseDate("2023-06-02"))
}

// ---------- ArraysAreEqual ----------

func TestArraysAreEqual(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{3, 1, 2}
	c := []int{1, 2, 4}
	d := []int{4, 5, 6, 7}

	assert.False(t, ArraysAreEqual(a, d), "length mismatch")
	assert.False(t, ArraysAreEqual(a, c), "different values")
	assert.True(t, ArraysAreEqual(a, b), "same values, other order")
	assert.True(t, ArraysAreEqual([]int{}, nil))
}

// ---------- Difference / Unique ----------

func TestDifference(t *testing.T) {
	assert.Equal(t, []int{4, 5}, Difference([]int{1, 4, 2, 5}, []int{1, 2, 3}))
	assert.Empty(t, Difference([]int{1, 2}, []int{2, 1}))
	assert.Empty(t, Difference(nil, []int{1}))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{2, 6, 4}, Unique([]int{2, 6, 2, 4, 6}))
}
