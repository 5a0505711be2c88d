package fastq

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	input := `@SEQ_ID description
ACGTACGT
+
IIIIIIII
`
	p := NewParser(strings.NewReader(input))
	rec, err := p.Next()
	require.NoError(t, err)

	assert.Equal(t, []byte("SEQ_ID description"), rec.Header)
	assert.Equal(t, []byte("ACGTACGT"), rec.Sequence)
	assert.Empty(t, rec.PlusLine)
	assert.Equal(t, []byte("IIIIIIII"), rec.Quality)
}

func TestParseMultipleRecords(t *testing.T) {
	input := `@SEQ_1
AAAA
+
!!!!
@SEQ_2
CCCC
+
####
@SEQ_3
GGGG
+
$$$$
`
	p := NewParser(strings.NewReader(input))

	tests := []struct {
		header string
		seq    string
		qual   string
	}{
		{"SEQ_1", "AAAA", "!!!!"},
		{"SEQ_2", "CCCC", "####"},
		{"SEQ_3", "GGGG", "$$$$"},
	}

	for _, tt := range tests {
		rec, err := p.Next()
		require.NoError(t, err)
		assert.Equal(t, []byte(tt.header), rec.Header)
		assert.Equal(t, []byte(tt.seq), rec.Sequence)
		assert.Equal(t, []byte(tt.qual), rec.Quality)
	}

	// Should get EOF after all records
	_, err := p.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseEmptyInput(t *testing.T) {
	p := NewParser(strings.NewReader(""))
	_, err := p.Next()
	assert.Error(t, err)
}

func TestParseMalformedNoAt(t *testing.T) {
	input := `SEQ_ID
ACGT
+
IIII
`
	p := NewParser(strings.NewReader(input))
	_, err := p.Next()
	assert.Error(t, err)
}

func TestParseMalformedMismatchedLength(t *testing.T) {
	input := `@SEQ_ID
ACGTACGT
+
III
`
	p := NewParser(strings.NewReader(input))
	_, err := p.Next()
	assert.Error(t, err)
}

func TestParsePlusLinePayload(t *testing.T) {
	input := `@SEQ_1
ACGTACGT
+SEQ_1 comment
IIIIIIII
`
	p := NewParser(strings.NewReader(input))
	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("SEQ_1 comment"), rec.PlusLine)
}

func TestParseCRLF(t *testing.T) {
	input := "@SEQ_1\r\nACGT\r\n+\r\nIIII\r\n"
	p := NewParser(strings.NewReader(input))
	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("SEQ_1"), rec.Header)
	assert.Equal(t, []byte("ACGT"), rec.Sequence)
	assert.Equal(t, []byte("IIII"), rec.Quality)
}

func TestReadAll(t *testing.T) {
	var buf bytes.Buffer
	for i := 0; i < 250; i++ {
		buf.WriteString("@SEQ_" + string(rune('A'+i%26)) + "\n")
		buf.WriteString("ACGTACGTACGTACGT\n")
		buf.WriteString("+\n")
		buf.WriteString("IIIIIIIIIIIIIIII\n")
	}

	records, err := ReadAll(&buf)
	require.NoError(t, err)
	assert.Len(t, records, 250)
	assert.Equal(t, []byte("ACGTACGTACGTACGT"), records[0].Sequence)
}

func TestReadAllEmpty(t *testing.T) {
	records, err := ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadAllMalformed(t *testing.T) {
	input := `@SEQ_1
AAAA
+
!!!!
not a header
`
	_, err := ReadAll(strings.NewReader(input))
	assert.Error(t, err)
}
