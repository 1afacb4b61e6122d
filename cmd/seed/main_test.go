package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseRows(t *testing.T) {
	in := "nombre;grupo\nJuan Pérez;Norte\n;Sur\nAna\n"
	rows, err := parseRows(strings.NewReader(in), false)
	require.NoError(t, err)
	assert.Equal(t, []row{{name: "Juan Pérez", group: "Norte"}, {name: "Ana"}}, rows)
}

func TestParseRows_Latin1(t *testing.T) {
	enc, err := charmap.ISO8859_1.NewEncoder().String("nombre;grupo\nMuñoz;Cañada\n")
	require.NoError(t, err)

	rows, err := parseRows(bytes.NewReader([]byte(enc)), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Muñoz", rows[0].name)
	assert.Equal(t, "Cañada", rows[0].group)
}
