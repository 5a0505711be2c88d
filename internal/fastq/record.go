// Package fastq provides FASTQ record parsing, writing, and file access.
package fastq

// Record represents a single FASTQ record.
type Record struct {
	Header   []byte // Header line without the leading '@'
	Sequence []byte // DNA sequence (A, C, G, T, N)
	PlusLine []byte // Separator line payload without the leading '+', usually empty
	Quality  []byte // Quality scores (Phred+33 encoded)
}
