package collect

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-sv/internal/vcf"
)

// Collector reads VCF files and groups their records by graph ID.
type Collector struct {
	opts    vcf.GraphOptions
	workers int
	logger  *zap.Logger
}

// NewCollector creates a collector that computes graph IDs with opts.
func NewCollector(opts vcf.GraphOptions) *Collector {
	return &Collector{
		opts:    opts,
		workers: 1,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for per-file progress messages.
func (c *Collector) SetLogger(l *zap.Logger) {
	c.logger = l
}

// SetWorkers sets how many files are read concurrently.
// 1 (the default) or a negative value reads files one after another;
// 0 uses one worker per CPU.
func (c *Collector) SetWorkers(n int) {
	c.workers = n
}

// Options returns the graph ID options used by the collector.
func (c *Collector) Options() vcf.GraphOptions {
	return c.opts
}

// ReadGroupedVariants reads every VCF named in the file list at listPath and
// returns their variants grouped by graph ID.
func (c *Collector) ReadGroupedVariants(listPath string) (Groups, error) {
	paths, err := ReadFileList(listPath)
	if err != nil {
		return nil, err
	}
	return c.ReadFiles(paths)
}

// ReadFiles reads the given VCFs, tagging variants from paths[i] with sample i.
// Within each graph ID, variants from earlier files come first and keep their
// order within a file. Any error discards the whole result.
func (c *Collector) ReadFiles(paths []string) (Groups, error) {
	merged := make(Groups)

	if c.workers == 1 || c.workers < 0 || len(paths) < 2 {
		for i, p := range paths {
			g, err := c.ReadFile(p, i)
			if err != nil {
				return nil, err
			}
			merged.Merge(g)
		}
		return merged, nil
	}

	jobs := make(chan fileJob, len(paths))
	for i, p := range paths {
		jobs <- fileJob{Seq: i, Path: p}
	}
	close(jobs)

	workers := c.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	err := orderedCollect(c.parallelRead(jobs, workers), func(r fileResult) error {
		if r.Err != nil {
			return r.Err
		}
		merged.Merge(r.Groups)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// ReadFile reads one VCF and groups its variants by graph ID.
func (c *Collector) ReadFile(path string, sample int) (Groups, error) {
	r, err := vcf.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	groups := make(Groups)
	count := 0
	for {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			break
		}

		v, err := NewVariant(rec, sample, c.opts)
		if err != nil {
			return nil, &vcf.ParseError{Path: path, Line: r.LineNumber(), Err: err}
		}
		groups.Add(v)
		count++
	}

	c.logger.Info("read variants",
		zap.String("file", path),
		zap.Int("sample", sample),
		zap.Int("variants", count))

	return groups, nil
}

// String describes the collector settings, for log output.
func (c *Collector) String() string {
	return fmt.Sprintf("collector(use_type=%t, use_strand=%t, workers=%d)",
		c.opts.UseType, c.opts.UseStrand, c.workers)
}
