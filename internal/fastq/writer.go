package fastq

import (
	"bufio"
	"io"
)

// Writer emits FASTQ records in their canonical 4-line form.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a buffered FASTQ writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 1<<20)}
}

// Write emits one record. Direct byte writes instead of fmt.Fprintf to
// avoid format string parsing and interface dispatch per record.
func (w *Writer) Write(rec *Record) error {
	w.bw.WriteByte('@')
	w.bw.Write(rec.Header)
	w.bw.WriteByte('\n')
	w.bw.Write(rec.Sequence)
	w.bw.WriteByte('\n')
	w.bw.WriteByte('+')
	w.bw.Write(rec.PlusLine)
	w.bw.WriteByte('\n')
	w.bw.Write(rec.Quality)
	_, err := w.bw.Write([]byte{'\n'})
	return err
}

// Flush writes any buffered records to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
