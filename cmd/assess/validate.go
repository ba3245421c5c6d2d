package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"vendor-risk-assessor/internal/ingest"
	"vendor-risk-assessor/internal/taxonomy"
)

var errTaxonomyNotClean = errors.New("taxonomy audit found issues")

func newValidateTaxonomyCmd(f *cliFlags, stdout, stderr io.Writer) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate-taxonomy [path]",
		Short: "Load a risk taxonomy and report data-quality issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			path := cfg.Taxonomy
			if len(args) == 1 {
				path = args[0]
			}
			idx, err := ingest.LoadTaxonomyFile(path, newLogger(cfg, stderr))
			if err != nil {
				return err
			}
			audit := taxonomy.Inspect(idx)
			if f.ci {
				raw, err := json.Marshal(audit)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, string(raw))
			} else {
				printAudit(stdout, path, audit)
			}
			if strict && !audit.Clean() {
				return errTaxonomyNotClean
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when the audit finds any issue")
	return cmd
}

func printAudit(w io.Writer, path string, a taxonomy.Audit) {
	fmt.Fprintf(w, "Taxonomy: %s (%s form, %d entries)\n", path, a.Form, a.Entries)
	fmt.Fprintln(w, "By risk level:")
	for _, k := range sortedCounts(a.ByRiskLevel) {
		fmt.Fprintf(w, "  %-10s %d\n", label(k), a.ByRiskLevel[k])
	}
	fmt.Fprintln(w, "By category:")
	for _, k := range sortedCounts(a.ByCategory) {
		fmt.Fprintf(w, "  %-20s %d\n", label(k), a.ByCategory[k])
	}
	if a.BlankQuestions > 0 {
		fmt.Fprintf(w, "Blank questions: %d\n", a.BlankQuestions)
	}
	for _, q := range a.DuplicateQuestions {
		fmt.Fprintf(w, "Duplicate question (later entries ignored): %s\n", q)
	}
	for _, q := range a.UnweightedControls {
		fmt.Fprintf(w, "Unrecognized risk level, scores 0: %s\n", q)
	}
	if a.Clean() {
		fmt.Fprintln(w, "Audit: CLEAN")
	} else {
		fmt.Fprintln(w, "Audit: ISSUES FOUND")
	}
}

func sortedCounts(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func label(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
