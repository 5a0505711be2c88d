// Package discover locates organism read files under a base directory.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vertti/metasim/internal/compose"
	"github.com/vertti/metasim/internal/fastq"
)

// ErrNoReads is returned when an organism's read file contains no records.
var ErrNoReads = errors.New("read file contains no records")

// ReadFile is one organism's discovered read file.
type ReadFile struct {
	Organism string
	Path     string
}

// ReadFiles finds one read file per organism directory under base.
// FastQC report files are ignored; the first remaining file in lexical
// order is taken. Missing directories and directories without read
// files are skipped, not errors — callers compare the result against
// the requested list to report them.
func ReadFiles(base string, dirs []string) ([]ReadFile, error) {
	var found []ReadFile
	for _, dir := range dirs {
		entries, err := os.ReadDir(filepath.Join(base, dir))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || isFastQCOutput(entry.Name()) {
				continue
			}
			found = append(found, ReadFile{
				Organism: dir,
				Path:     filepath.Join(base, dir, entry.Name()),
			})
			break
		}
	}
	return found, nil
}

func isFastQCOutput(name string) bool {
	return strings.HasSuffix(name, "_fastqc.html") || strings.HasSuffix(name, "_fastqc.zip")
}

// LoadSources reads every discovered file into an in-memory source set,
// in discovery order.
func LoadSources(files []ReadFile) ([]compose.Source, error) {
	sources := make([]compose.Source, 0, len(files))
	for _, rf := range files {
		records, err := fastq.LoadFile(rf.Path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", rf.Organism, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%s: %w", rf.Organism, ErrNoReads)
		}
		sources = append(sources, compose.Source{Name: rf.Organism, Records: records})
	}
	return sources, nil
}
