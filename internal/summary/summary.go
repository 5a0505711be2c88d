// Package summary renders composition results into human-readable and
// persisted summary text.
package summary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vertti/metasim/internal/compose"
)

// Render writes the end-of-run summary block.
func Render(w io.Writer, results []compose.Result, outDir string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(w, "METAGENOME CREATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Output directory: %s\n", outDir)
	fmt.Fprintf(w, "Total metagenomes created: %d\n", len(results))
	fmt.Fprintf(w, "\nFiles created:\n")

	for _, res := range results {
		fmt.Fprintf(w, "  %s\n", filepath.Base(res.Path))
		fmt.Fprintf(w, "    Ratio: %.0f%% eukaryotes, %.0f%% phages\n", res.RatioA*100, res.RatioB*100)
		fmt.Fprintf(w, "    Replicate: %d\n", res.Replicate)
		fmt.Fprintf(w, "    Reads: %s\n\n", commas(res.Reads))
	}
}

// WriteFile persists the summary to path.
func WriteFile(path string, results []compose.Result, totalReads, replicates int) error {
	f, err := os.Create(path) //nolint:gosec // summary path derives from user-specified output dir
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, "Metagenome Creation Summary")
	fmt.Fprintf(bw, "%s\n\n", strings.Repeat("=", 40))
	fmt.Fprintf(bw, "Total metagenomes: %d\n", len(results))
	fmt.Fprintf(bw, "Total reads per metagenome: %s\n", commas(totalReads))
	fmt.Fprintf(bw, "Replicates per ratio: %d\n\n", replicates)

	fmt.Fprintln(bw, "Files created:")
	fmt.Fprintln(bw, strings.Repeat("-", 20))
	for _, res := range results {
		fmt.Fprintln(bw, filepath.Base(res.Path))
		fmt.Fprintf(bw, "  Ratio: %.0f%% eukaryotes, %.0f%% phages\n", res.RatioA*100, res.RatioB*100)
		fmt.Fprintf(bw, "  Replicate: %d\n", res.Replicate)
		fmt.Fprintf(bw, "  Reads: %s\n\n", commas(res.Reads))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing summary file: %w", err)
	}
	return f.Close()
}

// commas formats n with thousands separators, e.g. 100000 -> "100,000".
func commas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
