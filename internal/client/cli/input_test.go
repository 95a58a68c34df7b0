package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/plana/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  Octant  \n"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Octant", got)
	assert.Equal(t, "Name\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name", &out)
	require.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("first\r\nsecond\n\nnot read\n"), "Description", &out)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)

	got, err = GetMultiline(rdr("\n"), "Description", &out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "empty line", input: "   ", want: nil},
		{name: "words", input: "commissions  active=true\topen=no", want: []string{"commissions", "active=true", "open=no"}},
		{name: "quoted phrase", input: `directory "site Alsace"`, want: []string{"directory", "site Alsace"}},
		{name: "quotes inside a value", input: `association-edit 3 name="Club Théâtre"`, want: []string{"association-edit", "3", "name=Club Théâtre"}},
		{name: "empty quotes", input: `advanced name=""`, want: []string{"advanced", "name="}},
		{name: "unterminated", input: `directory "site`, wantErr: errUnterminatedQuote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyValues(t *testing.T) {
	kv, bare := parseKeyValues([]string{"Name=Octant", "description", "goa=", "url=a=b"})
	assert.Equal(t, map[string]string{"name": "Octant", "goa": "", "url": "a=b"}, kv)
	assert.Equal(t, []string{"description"}, bare)
}

func TestParseIDs(t *testing.T) {
	got, err := parseIDs("1, 2,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = parseIDs("")
	require.NoError(t, err)
	assert.Equal(t, []int{}, got)

	_, err = parseIDs("1,x")
	require.ErrorIs(t, err, common.ErrValidation)
	_, err = parseID("0")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"yes", "Y", "true", "1", "on"} {
		b, err := parseBool(s)
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"no", "N", "false", "0", "off"} {
		b, err := parseBool(s)
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
	_, err := parseBool("maybe")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestNullParsers(t *testing.T) {
	assert.Equal(t, null.String{}, nullString(""))
	assert.Equal(t, null.StringFrom("x"), nullString("x"))

	n, err := nullInt("")
	require.NoError(t, err)
	assert.False(t, n.Valid)
	n, err = nullInt("42")
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(42), n)
	_, err = nullInt("4x")
	require.ErrorIs(t, err, common.ErrValidation)

	s, err := nullInt64("12345678901234")
	require.NoError(t, err)
	assert.Equal(t, null.Int64From(12345678901234), s)
}
