package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/reswitch/pkg/types"
	"github.com/spf13/cobra"
)

var (
	listDefs   string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available switches",
	Long:  "Display all switches in a definitions file or directory with their IDs and names",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDefs, "defs", "", "Path to definitions file or directory (default: built-in switches)")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json")
}

func runList(cmd *cobra.Command, args []string) error {
	defs, err := loadDefinitions(listDefs)
	if err != nil {
		return err
	}

	switch listFormat {
	case "json":
		return outputListJSON(cmd, defs)
	case "table":
		return outputListTable(cmd, defs)
	default:
		return fmt.Errorf("unknown output format: %s", listFormat)
	}
}

func outputListJSON(cmd *cobra.Command, defs []*types.Definition) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(defs)
}

func outputListTable(cmd *cobra.Command, defs []*types.Definition) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tName\tAlternatives\tOptions\n")
	fmt.Fprintf(w, "--\t----\t------------\t-------\n")

	for _, d := range defs {
		options := "-"
		if len(d.Options) > 0 {
			options = strings.Join(d.Options, ",")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", d.ID, d.Name, len(d.Alternatives), options)
	}

	return nil
}
