// metasim synthesizes ground-truth metagenome FASTQ files by sampling
// reads from per-organism read files at controlled abundance ratios.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vertti/metasim/internal/compose"
	"github.com/vertti/metasim/internal/discover"
	"github.com/vertti/metasim/internal/summary"
)

var version = "dev"

const (
	exitSuccess = 0
	exitError   = 1
)

const (
	defaultEukDirs   = "euk1,euk2,euk3"
	defaultPhageDirs = "phage1,phage2,phage3,phage4,phage5"
	defaultRatios    = "0.7:0.3,0.5:0.5,0.3:0.7"
)

type config struct {
	baseDir    string
	outputDir  string
	totalReads int
	replicates int
	eukDirs    []string
	phageDirs  []string
	ratios     []compose.Ratio
	workers    int
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, done, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}
	if done {
		return exitSuccess
	}

	if err := execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitError
	}

	return exitSuccess
}

func parseFlags() (config, bool, error) {
	var cfg config
	var eukList, phageList, ratioList string
	var showVersion, showHelp bool

	flag.StringVar(&cfg.baseDir, "base", ".", "base directory containing organism folders")
	flag.StringVar(&cfg.outputDir, "o", "metagenomes", "output directory for metagenomes")
	flag.IntVar(&cfg.totalReads, "n", 100000, "total reads per metagenome")
	flag.IntVar(&cfg.replicates, "r", 3, "number of replicates per ratio")
	flag.StringVar(&eukList, "euk", defaultEukDirs, "comma-separated eukaryote folder names")
	flag.StringVar(&phageList, "phage", defaultPhageDirs, "comma-separated phage folder names")
	flag.StringVar(&ratioList, "ratios", defaultRatios, "comma-separated euk:phage ratio pairs")
	flag.IntVar(&cfg.workers, "w", 1, "parallel composition workers")
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.BoolVar(&showHelp, "h", false, "show help")

	flag.Usage = usage
	flag.Parse()

	if showHelp {
		flag.Usage()
		return cfg, true, nil
	}

	if showVersion {
		fmt.Printf("metasim version %s\n", version)
		return cfg, true, nil
	}

	if cfg.totalReads <= 0 {
		return cfg, false, fmt.Errorf("total reads must be positive, got %d", cfg.totalReads)
	}
	if cfg.replicates <= 0 {
		return cfg, false, fmt.Errorf("replicates must be positive, got %d", cfg.replicates)
	}

	cfg.eukDirs = splitList(eukList)
	cfg.phageDirs = splitList(phageList)

	ratios, err := parseRatios(ratioList)
	if err != nil {
		return cfg, false, err
	}
	cfg.ratios = ratios

	return cfg, false, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `metasim - Synthetic metagenome generator

Samples reads from per-organism FASTQ files and concatenates them at
target abundance ratios, producing randomized replicates with known
ground-truth composition.

Usage:
  metasim [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  metasim -base reads/ -o metagenomes/            Default ratios, 3 replicates
  metasim -n 500000 -r 5                          More reads, more replicates
  metasim -ratios 0.9:0.1,0.5:0.5 -w 4            Custom ratios, 4 workers
`)
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRatios parses a comma-separated list of A:B fraction pairs.
func parseRatios(s string) ([]compose.Ratio, error) {
	var ratios []compose.Ratio
	for _, pair := range splitList(s) {
		a, b, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid ratio pair %q: expected A:B", pair)
		}
		ra, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio pair %q: %w", pair, err)
		}
		rb, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio pair %q: %w", pair, err)
		}
		if ra < 0 || ra > 1 || rb < 0 || rb > 1 {
			return nil, fmt.Errorf("invalid ratio pair %q: fractions must be in [0,1]", pair)
		}
		ratios = append(ratios, compose.Ratio{A: ra, B: rb})
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("no ratio pairs given")
	}
	return ratios, nil
}

func execute(cfg config) error {
	fmt.Println("Finding read files...")
	eukSources, err := findSources(cfg.baseDir, cfg.eukDirs)
	if err != nil {
		return err
	}
	phageSources, err := findSources(cfg.baseDir, cfg.phageDirs)
	if err != nil {
		return err
	}
	fmt.Printf("\nFound %d eukaryote files and %d phage files\n", len(eukSources), len(phageSources))

	for _, r := range cfg.ratios {
		eukReads := compose.GroupReads(cfg.totalReads, r.A)
		phageReads := compose.GroupReads(cfg.totalReads, r.B)
		fmt.Printf("\nRatio %.1f%% eukaryotes / %.1f%% phages:\n", r.A*100, r.B*100)
		fmt.Printf("  Eukaryote reads: %d (%d per organism)\n", eukReads, compose.PerSource(eukReads, len(eukSources)))
		fmt.Printf("  Phage reads: %d (%d per organism)\n", phageReads, compose.PerSource(phageReads, len(phageSources)))
	}

	results, err := compose.Run(context.Background(), eukSources, phageSources, cfg.ratios, cfg.totalReads, cfg.replicates, cfg.outputDir, cfg.workers)
	if err != nil {
		return err
	}

	summary.Render(os.Stdout, results, cfg.outputDir)

	summaryPath := filepath.Join(cfg.outputDir, "metagenome_summary.txt")
	if err := summary.WriteFile(summaryPath, results, cfg.totalReads, cfg.replicates); err != nil {
		return err
	}
	fmt.Printf("Summary saved to: %s\n", summaryPath)

	return nil
}

// findSources discovers and loads read files for the requested organism
// folders, reporting folders that yielded nothing.
func findSources(base string, dirs []string) ([]compose.Source, error) {
	files, err := discover.ReadFiles(base, dirs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(files))
	for _, rf := range files {
		found[rf.Organism] = true
		fmt.Printf("Found reads for %s: %s\n", rf.Organism, filepath.Base(rf.Path))
	}
	for _, dir := range dirs {
		if !found[dir] {
			fmt.Printf("No read files found in %s\n", dir)
		}
	}

	return discover.LoadSources(files)
}
