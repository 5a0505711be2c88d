// Package sample selects reads from an in-memory FASTQ source without
// replacement, deterministically for a given seed.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vertti/metasim/internal/fastq"
)

// ErrEmptySource is returned when records are requested from an empty source.
var ErrEmptySource = errors.New("no records to draw from")

// Records returns count records chosen uniformly at random from source,
// in their original source order. If count meets or exceeds the source
// size, the source is returned unchanged and no randomness is applied.
// The returned slice may alias source; callers must not mutate records.
//
// Each call builds its own PRNG from seed, so results for a fixed
// (source, count, seed) are identical across calls and no generator
// state leaks between calls.
func Records(source []fastq.Record, count int, seed uint64) ([]fastq.Record, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative record count %d", count)
	}
	if count == 0 {
		return nil, nil
	}
	if len(source) == 0 {
		return nil, ErrEmptySource
	}
	if count >= len(source) {
		return source, nil
	}

	//nolint:gosec // intentionally using math/rand for reproducibility, not security
	rng := rand.New(rand.NewPCG(seed, seed))

	// Draw indices into a set until it has count members. A repeated
	// draw leaves the set unchanged, so this terminates with exactly
	// count distinct records.
	chosen := make(map[int]struct{}, count)
	for len(chosen) < count {
		chosen[rng.IntN(len(source))] = struct{}{}
	}

	out := make([]fastq.Record, 0, count)
	for i := range source {
		if _, ok := chosen[i]; ok {
			out = append(out, source[i])
		}
	}
	return out, nil
}
