package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bikecast/bikecast/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"prediction": 640, "status": "success"}))
	assert.Equal(t, "{\n  \"prediction\": 640,\n  \"status\": \"success\"\n}\n", buf.String())
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "x,y"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello"))
		return err
	}, "Wrote test")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "695", formatCount(695))
	assert.Equal(t, "12,345", formatCount(12345))
	assert.Equal(t, "0.3535", formatFloat(0.3535))
	assert.Equal(t, "40", formatFloat(40))

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "Summer", "Summer"},
		{"float", 28.0, "28"},
		{"number", json.Number("8.5"), "8.5"},
		{"int", 3, "3"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(tt.value))
		})
	}
}

func TestGetMaxTableValueWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 20, expected: 12},
		{width: 60, expected: 35},
		{width: 200, expected: 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, getMaxTableValueWidth(&contract.Config{Width: tt.width}))
	}
}
