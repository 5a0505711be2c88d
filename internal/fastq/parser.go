package fastq

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Parser reads FASTQ records from an input stream.
type Parser struct {
	reader *bufio.Reader
	line   []byte // reusable buffer for reading lines
}

// NewParser creates a new FASTQ parser.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		reader: bufio.NewReaderSize(r, 1<<20), // 1MB buffer
		line:   make([]byte, 0, 512),
	}
}

// Next reads and returns the next FASTQ record.
// Returns io.EOF when no more records are available.
func (p *Parser) Next() (*Record, error) {
	rec := &Record{}

	// Line 1: Header (starts with @)
	line, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if len(line) == 0 || line[0] != '@' {
		return nil, errors.New("invalid FASTQ: header line must start with @")
	}
	rec.Header = make([]byte, len(line)-1)
	copy(rec.Header, line[1:]) // strip leading @

	// Line 2: Sequence
	line, err = p.readLine()
	if err != nil {
		return nil, err
	}
	rec.Sequence = make([]byte, len(line))
	copy(rec.Sequence, line)

	// Line 3: Plus line (payload preserved verbatim)
	line, err = p.readLine()
	if err != nil {
		return nil, err
	}
	if len(line) == 0 || line[0] != '+' {
		return nil, errors.New("invalid FASTQ: separator line must start with +")
	}
	if len(line) > 1 {
		rec.PlusLine = make([]byte, len(line)-1)
		copy(rec.PlusLine, line[1:])
	}

	// Line 4: Quality scores
	line, err = p.readLine()
	if err != nil {
		return nil, err
	}
	rec.Quality = make([]byte, len(line))
	copy(rec.Quality, line)

	// Validate lengths match
	if len(rec.Sequence) != len(rec.Quality) {
		return nil, errors.New("invalid FASTQ: sequence and quality lengths must match")
	}

	return rec, nil
}

// ReadAll reads every record from r until EOF.
func ReadAll(r io.Reader) ([]Record, error) {
	p := NewParser(r)
	var records []Record
	for {
		rec, err := p.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
}

// readLine reads a line from the input, stripping the newline.
// Reuses an internal buffer to minimize allocations.
func (p *Parser) readLine() ([]byte, error) {
	p.line = p.line[:0]

	for {
		segment, isPrefix, err := p.reader.ReadLine()
		if err != nil {
			return nil, err
		}

		p.line = append(p.line, segment...)

		if !isPrefix {
			break
		}
	}

	// Trim any trailing CR (for Windows line endings)
	p.line = bytes.TrimSuffix(p.line, []byte{'\r'})

	return p.line, nil
}
