// Package compose assembles metagenome artifacts by sampling reads from
// organism sources according to target abundance ratios.
package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vertti/metasim/internal/fastq"
	"github.com/vertti/metasim/internal/sample"
)

// Source is one organism's full read set, loaded from one input file.
type Source struct {
	Name    string
	Records []fastq.Record
}

// Ratio is a pair of target abundance fractions: A for the first group
// (eukaryotes in the reference use case), B for the second (phages).
type Ratio struct {
	A float64
	B float64
}

// Params describes one composition: the sources, the ratio, the nominal
// total read count, and the replicate index, which also seeds sampling.
type Params struct {
	GroupA     []Source
	GroupB     []Source
	Ratio      Ratio
	TotalReads int
	Replicate  int
	OutDir     string
}

// Result describes one written metagenome artifact. Reads is the record
// count of the final file, re-counted end to end after writing.
type Result struct {
	Path      string
	RatioA    float64
	RatioB    float64
	Replicate int
	Reads     int
}

// GroupReads returns the read budget for a group: floor(total * ratio).
func GroupReads(total int, ratio float64) int {
	return int(float64(total) * ratio)
}

// PerSource divides a group budget evenly across its sources. The
// division remainder is dropped, not redistributed, so the realized
// group total can fall short of the budget by up to len-1 reads.
func PerSource(groupReads, sources int) int {
	if sources == 0 {
		return 0
	}
	return groupReads / sources
}

// ArtifactName returns the output file name for a (ratio, replicate)
// pair, encoding the two ratio percentages and the replicate index.
func ArtifactName(r Ratio, replicate int) string {
	return fmt.Sprintf("metagenome_euk%.0f_phage%.0f_rep%d.fastq", r.A*100, r.B*100, replicate)
}

// Compose samples each source per its quota and writes the concatenated
// reads to the artifact file for p's (ratio, replicate) pair. The file
// is written to a temporary name and renamed into place on success, so
// a failed composition never publishes a partial artifact.
func Compose(p Params) (Result, error) {
	if err := os.MkdirAll(p.OutDir, 0o750); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(p.OutDir, ArtifactName(p.Ratio, p.Replicate))

	perSourceA := PerSource(GroupReads(p.TotalReads, p.Ratio.A), len(p.GroupA))
	perSourceB := PerSource(GroupReads(p.TotalReads, p.Ratio.B), len(p.GroupB))

	if err := writeArtifact(path, p, perSourceA, perSourceB); err != nil {
		return Result{}, err
	}

	// Verification pass: count what actually landed in the file rather
	// than trusting the sum of per-source sample sizes.
	reads, err := fastq.CountRecords(path)
	if err != nil {
		return Result{}, fmt.Errorf("verifying artifact: %w", err)
	}

	return Result{
		Path:      path,
		RatioA:    p.Ratio.A,
		RatioB:    p.Ratio.B,
		Replicate: p.Replicate,
		Reads:     reads,
	}, nil
}

func writeArtifact(path string, p Params, perSourceA, perSourceB int) (err error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // artifact path derives from user-specified output dir
	if err != nil {
		return fmt.Errorf("creating artifact: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := fastq.NewWriter(f)
	if err = appendGroup(w, p.GroupA, perSourceA, p.Replicate); err != nil {
		return err
	}
	if err = appendGroup(w, p.GroupB, perSourceB, p.Replicate); err != nil {
		return err
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing artifact: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publishing artifact: %w", err)
	}
	return nil
}

// appendGroup samples quota reads from each source in order and appends
// them to the artifact. Sources with a zero quota contribute nothing.
func appendGroup(w *fastq.Writer, group []Source, quota, replicate int) error {
	if quota <= 0 {
		return nil
	}
	for _, src := range group {
		records, err := sample.Records(src.Records, quota, uint64(replicate)) //nolint:gosec // replicate is a small positive index
		if err != nil {
			return fmt.Errorf("sampling %s: %w", src.Name, err)
		}
		for i := range records {
			if err := w.Write(&records[i]); err != nil {
				return fmt.Errorf("writing %s reads: %w", src.Name, err)
			}
		}
	}
	return nil
}
