package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexToRowLabel(t *testing.T) {
	cases := []struct {
		idx  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, indexToRowLabel(tc.idx), "index %d", tc.idx)
	}
}

func TestRowLabelToIndex(t *testing.T) {
	for i := 0; i < 1000; i++ {
		lbl := indexToRowLabel(i)
		got, ok := rowLabelToIndex(lbl)
		assert.True(t, ok, "label %q", lbl)
		assert.Equal(t, i, got, "label %q", lbl)
	}

	_, ok := rowLabelToIndex("")
	assert.False(t, ok)
	_, ok = rowLabelToIndex("A1")
	assert.False(t, ok)
	_, ok = rowLabelToIndex("Ä")
	assert.False(t, ok)

	got, ok := rowLabelToIndex("  aa ")
	assert.True(t, ok)
	assert.Equal(t, 26, got)
}

func TestNormalizeRowLabel(t *testing.T) {
	assert.Equal(t, "A", normalizeRowLabel("a"))
	assert.Equal(t, "AB", normalizeRowLabel(" a-b! "))
	assert.Equal(t, "ROW", normalizeRowLabel("Row 12"))
	assert.Equal(t, "", normalizeRowLabel("123"))
}
