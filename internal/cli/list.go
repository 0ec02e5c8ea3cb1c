package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/assaylab/assay/internal/scopebench"
	"github.com/assaylab/assay/internal/suites"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
}

// SuiteInfo describes one built-in suite.
type SuiteInfo struct {
	Name string `json:"name"`
	File string `json:"file"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in suites",
		Long: `List the built-in suites with their names and source labels.

Names are what the run command's --filter glob matches against.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	cases := suites.All(scopebench.New())

	infos := make([]SuiteInfo, 0, len(cases))
	for _, c := range cases {
		infos = append(infos, SuiteInfo{Name: c.Name(), File: c.File()})
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(infos)
	}

	w := cmd.OutOrStdout()
	for _, info := range infos {
		fmt.Fprintf(w, "%-24s %s\n", info.Name, info.File)
	}
	return nil
}
