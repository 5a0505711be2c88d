package fastq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open opens a read file for parsing, transparently decompressing gzip
// input detected by extension or magic bytes. The returned cleanup
// function must be called when reading is done.
func Open(path string) (io.Reader, func(), error) {
	f, err := os.Open(path) //nolint:gosec // CLI tool needs to open user-specified files
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open input: %w", err)
	}
	cleanup := func() { _ = f.Close() }

	br := bufio.NewReaderSize(f, 1<<20)
	hasGzipMagic, err := inputHasGzipMagic(br)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("cannot inspect input: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".gz") || hasGzipMagic {
		gz, err := gzip.NewReader(br)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("cannot open gzip input: %w", err)
		}
		return gz, func() {
			_ = gz.Close()
			cleanup()
		}, nil
	}

	return br, cleanup, nil
}

func inputHasGzipMagic(br *bufio.Reader) (bool, error) {
	header, err := br.Peek(2)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return len(header) == 2 && header[0] == 0x1f && header[1] == 0x8b, nil
}

// LoadFile reads all records from a file.
func LoadFile(path string) ([]Record, error) {
	r, cleanup, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	records, err := ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// CountRecords counts the records in a file with a full parse pass.
func CountRecords(path string) (int, error) {
	r, cleanup, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	p := NewParser(r)
	count := 0
	for {
		_, err := p.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return 0, fmt.Errorf("counting %s: %w", path, err)
		}
		count++
	}
}
