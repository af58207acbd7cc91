package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirmer(t *testing.T) {
	for answer, want := range map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"yes":   true,
	} {
		var out bytes.Buffer
		c := promptConfirmer{in: strings.NewReader(answer), out: &out}
		assert.Equal(t, want, c.Confirm(context.Background(), "Delete product 5?"), "answer %q", answer)
		assert.Equal(t, "Delete product 5? [y/N]: ", out.String())
	}
}

func TestFilterPatch(t *testing.T) {
	cat := 3
	p, err := filterPatch("2024-01-01", "", &cat)
	require.NoError(t, err)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, "2024-01-01", p.StartDate.Format("2006-01-02"))
	assert.Nil(t, p.EndDate)
	assert.Equal(t, 3, *p.CategoryID)

	_, err = filterPatch("", "01/02/2024", nil)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
