package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath        string
	flagInput         string
	flagOutput        string
	flagStructure     bool
	flagBatchCount    int
	flagTimestampType string
	flagSchema        string
)

var rootCmd = &cobra.Command{
	Use:   "xml2pg [config.toml]",
	Short: "Convert a mysqldump --xml dump into a PostgreSQL script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConvert,
}

func init() {
	rootCmd.Version = versionString()
	registerFlags(rootCmd)
}

// registerFlags binds the conversion flags to cmd. Defaults are written into
// the flag variables on every call.
func registerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "path to conversion TOML config file")
	f.StringVarP(&flagInput, "input", "i", "", "mysqldump --xml input file")
	f.StringVarP(&flagOutput, "output", "o", "", "PostgreSQL script output file")
	f.BoolVarP(&flagStructure, "structure", "s", false, "emit DROP/CREATE DDL before data (required: --structure=true or --structure=false)")
	f.IntVar(&flagBatchCount, "batch-count", defaultMaxBatchCount, "rows per INSERT statement")
	f.StringVar(&flagTimestampType, "timestamp-type", defaultTimestampType, "PostgreSQL type for datetime/timestamp columns")
	f.StringVar(&flagSchema, "schema", "", "target PostgreSQL schema (created and put on search_path)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	log.Printf("xml2pg %s: mysqldump XML → PostgreSQL script", cmd.Root().Version)
	log.Printf(
		"config: export_structure=%t max_batch_count=%d timestamp_type=%q schema=%q add_unsigned_checks=%t replicate_on_update_current_timestamp=%t",
		cfg.ExportStructure,
		cfg.MaxBatchCount,
		cfg.TimestampType,
		cfg.Schema,
		cfg.AddUnsignedChecks,
		cfg.ReplicateOnUpdateCurrentTimestamp,
	)

	res, err := convertFile(cmd.Context(), cfg, logProgress)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if len(res.Warnings) > 0 {
		log.Printf("conversion report: %d caveat(s) above may require manual handling", len(res.Warnings))
	}
	log.Printf("converted %d tables, %d rows in %s", res.Tables, res.Rows, time.Since(start).Round(time.Millisecond))
	return nil
}

// resolveConfig loads the optional config file and applies explicitly set
// flags on top. A positional config path takes precedence over --config.
func resolveConfig(cmd *cobra.Command, args []string) (*ConvertConfig, error) {
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}

	cfg := defaultConfig()
	if cfgPath != "" {
		loaded, err := loadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = flagInput
	}
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("structure") {
		cfg.setExportStructure(flagStructure)
	}
	if flags.Changed("batch-count") {
		cfg.MaxBatchCount = flagBatchCount
	}
	if flags.Changed("timestamp-type") {
		cfg.TimestampType = flagTimestampType
	}
	if flags.Changed("schema") {
		cfg.Schema = flagSchema
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
