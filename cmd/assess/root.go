package main

import (
	"io"

	"github.com/spf13/cobra"

	"vendor-risk-assessor/internal/config"
)

// cliFlags holds raw flag values; only flags the user set override the
// config file.
type cliFlags struct {
	configPath     string
	taxonomy       string
	vendorDir      string
	outDir         string
	formats        []string
	redact         bool
	history        bool
	compare        string
	maxAverageRisk float64
	concurrency    int
	logLevel       string
	logJSON        bool
	metricsFile    string
	ci             bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &cliFlags{}
	def := config.Default()

	root := &cobra.Command{
		Use:   "assess",
		Short: "Score third-party vendor security questionnaires against a risk taxonomy",
		Long: `assess reads a risk taxonomy and a directory of vendor questionnaire
answers (JSON or YAML), scores every vendor, aggregates the results and
writes the combined report.

Exit status is 0 on success, 1 on a fatal error (for example an empty
taxonomy) and 2 when the average risk exceeds --max-average-risk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssessment(cmd, f, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&f.taxonomy, "taxonomy", def.Taxonomy, "Risk taxonomy file (.json, .yaml)")
	pf.StringVar(&f.vendorDir, "vendors", def.VendorDir, "Directory of vendor answer files")
	pf.StringVar(&f.outDir, "out", def.OutDir, "Output directory")
	pf.StringSliceVar(&f.formats, "format", def.Formats, "Report formats: json, md, html, csv")
	pf.BoolVar(&f.redact, "redact", def.Redact, "Also write a redacted JSON report with vendor names masked")
	pf.BoolVar(&f.history, "history", def.History, "Record the run under <out>/history and report the trend")
	pf.StringVar(&f.compare, "compare", def.Compare, "Path to a previous report JSON to diff against")
	pf.Float64Var(&f.maxAverageRisk, "max-average-risk", def.MaxAverageRisk, "Fail with exit 2 when the average risk score exceeds this")
	pf.IntVar(&f.concurrency, "concurrency", def.Concurrency, "Vendor files decoded in parallel")
	pf.StringVar(&f.logLevel, "log-level", def.Log.Level, "Log level: debug, info, warn, error")
	pf.BoolVar(&f.logJSON, "log-json", def.Log.JSON, "Log as JSON")
	pf.StringVar(&f.metricsFile, "metrics-file", def.MetricsFile, "Write Prometheus metrics to this textfile")
	pf.BoolVar(&f.ci, "ci", false, "CI mode: print a single JSON summary line")

	root.AddCommand(
		newRunCmd(f, stdout, stderr),
		newValidateTaxonomyCmd(f, stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, f *cliFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("taxonomy") {
		cfg.Taxonomy = f.taxonomy
	}
	if set("vendors") {
		cfg.VendorDir = f.vendorDir
	}
	if set("out") {
		cfg.OutDir = f.outDir
	}
	if set("format") {
		cfg.Formats = f.formats
	}
	if set("redact") {
		cfg.Redact = f.redact
	}
	if set("history") {
		cfg.History = f.history
	}
	if set("compare") {
		cfg.Compare = f.compare
	}
	if set("max-average-risk") {
		cfg.MaxAverageRisk = f.maxAverageRisk
	}
	if set("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("log-json") {
		cfg.Log.JSON = f.logJSON
	}
	if set("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	return cfg, cfg.Validate()
}
