package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-sv/internal/collect"
	"github.com/inodb/vibe-sv/internal/duckdb"
	"github.com/inodb/vibe-sv/internal/output"
	"github.com/inodb/vibe-sv/internal/vcf"
)

// usageArgs turns argument validation failures into usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func newGroupCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "group [options] <file-list>",
		Short: "Group variants from the listed VCFs by graph ID",
		Long: `Read every VCF named in <file-list> (one path per line, blank lines
ignored) and write one line per variant, grouped by graph ID.

The graph ID is the chromosome, optionally followed by the SV type
(--use-type) and the STRANDS value (--use-strand).`,
		Example: `  vibe-sv group files.txt
  vibe-sv group --use-type --use-strand -o groups.tsv files.txt
  vibe-sv group --workers 8 --duckdb groups.duckdb files.txt`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd.OutOrStdout(), args[0], outputFile)
		},
	}

	cmd.Flags().Bool("use-type", false, "Include the SV type in the graph ID")
	cmd.Flags().Bool("use-strand", false, "Include the STRANDS value in the graph ID")
	cmd.Flags().Int("workers", 1, "Number of VCFs to read concurrently (0 = one per CPU)")
	cmd.Flags().String("duckdb", "", "Also export groups to this DuckDB database")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	_ = viper.BindPFlag(keyUseType, cmd.Flags().Lookup("use-type"))
	_ = viper.BindPFlag(keyUseStrand, cmd.Flags().Lookup("use-strand"))
	_ = viper.BindPFlag(keyWorkers, cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag(keyDuckDB, cmd.Flags().Lookup("duckdb"))

	return cmd
}

func runGroup(stdout io.Writer, listPath, outputFile string) error {
	logger, err := newLogger(viper.GetBool(keyVerbose))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	opts := vcf.GraphOptions{
		UseType:   viper.GetBool(keyUseType),
		UseStrand: viper.GetBool(keyUseStrand),
	}

	paths, err := collect.ReadFileList(listPath)
	if err != nil {
		return err
	}

	c := collect.NewCollector(opts)
	c.SetLogger(logger)
	c.SetWorkers(viper.GetInt(keyWorkers))
	logger.Debug("collecting", zap.Stringer("settings", c), zap.Int("files", len(paths)))

	groups, err := c.ReadFiles(paths)
	if err != nil {
		return err
	}
	logger.Info("grouped variants",
		zap.Int("files", len(paths)),
		zap.Int("groups", len(groups)),
		zap.Int("variants", groups.VariantCount()))

	out := stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := output.NewTabWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteGroups(groups); err != nil {
		return fmt.Errorf("writing groups: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	if dbPath := viper.GetString(keyDuckDB); dbPath != "" {
		runID, err := exportGroups(dbPath, paths, groups)
		if err != nil {
			return err
		}
		logger.Info("exported groups", zap.String("duckdb", dbPath), zap.String("run_id", runID))
	}

	return nil
}

// exportGroups stores groups and input fingerprints under a new run ID.
func exportGroups(dbPath string, paths []string, groups collect.Groups) (string, error) {
	fps, err := duckdb.StatFiles(paths)
	if err != nil {
		return "", err
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	runID := duckdb.NewRunID()
	if err := store.WriteSources(runID, fps); err != nil {
		return "", fmt.Errorf("writing sources: %w", err)
	}
	if err := store.WriteGroups(runID, groups); err != nil {
		return "", fmt.Errorf("writing groups: %w", err)
	}
	return runID, nil
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file-list>",
		Short: "Count the VCF files named in a file list",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := collect.CountFiles(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
