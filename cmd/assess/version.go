package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"vendor-risk-assessor/internal/model"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool and report schema version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(stdout, "%s %s (report schema %s)\n", model.ToolName, model.ToolVersion, model.SchemaVersion)
		},
	}
}
