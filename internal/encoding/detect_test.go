package encoding_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pream14/FinanceFrontend/internal/encoding"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestReader_PlainUTF8(t *testing.T) {
	r, err := encoding.Reader(strings.NewReader("Nakawa Märket"))
	require.NoError(t, err)
	assert.Equal(t, "Nakawa Märket", readAll(t, r))
}

func TestReader_UTF8BOMStripped(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,contact")...)

	r, err := encoding.Reader(strings.NewReader(string(in)))
	require.NoError(t, err)
	assert.Equal(t, "name,contact", readAll(t, r))
}

func TestReader_UTF16LE(t *testing.T) {
	// "hi" with a UTF-16 LE BOM.
	in := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}

	r, err := encoding.Reader(strings.NewReader(string(in)))
	require.NoError(t, err)
	assert.Equal(t, "hi", readAll(t, r))
}

func TestReader_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid on its own in UTF-8.
	in := []byte{'c', 'a', 'f', 0xE9}

	r, err := encoding.Reader(strings.NewReader(string(in)))
	require.NoError(t, err)
	assert.Equal(t, "café", readAll(t, r))
}

func TestReader_Empty(t *testing.T) {
	r, err := encoding.Reader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, r))
}
