package main

import (
	"fmt"

	"github.com/praetorian-inc/reswitch/pkg/matcher"
	"github.com/praetorian-inc/reswitch/pkg/rule"
	"github.com/spf13/cobra"
)

var (
	checkDefs    string
	checkInclude string
	checkExclude string
	checkColor   string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate switches and run their examples",
	Long: `Validate every switch in a definitions file or directory, build it and
run its examples. Each example must select its own alternative and each
negative example must not. Exits non-zero if any switch fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDefs, "defs", "", "Path to definitions file or directory (default: built-in switches)")
	checkCmd.Flags().StringVar(&checkInclude, "include", "", "Comma-separated regexes; only check switches whose ID matches")
	checkCmd.Flags().StringVar(&checkExclude, "exclude", "", "Comma-separated regexes; skip switches whose ID matches")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
}

func runCheck(cmd *cobra.Command, args []string) error {
	defs, err := loadDefinitions(checkDefs)
	if err != nil {
		return err
	}

	defs, err = rule.Filter(defs, rule.FilterConfig{
		Include: rule.ParsePatterns(checkInclude),
		Exclude: rule.ParsePatterns(checkExclude),
	})
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		warnf("no switches selected")
		return nil
	}

	s, err := resolveColor(checkColor)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	failed := 0
	seen := make(map[string]bool)
	for _, def := range defs {
		if seen[def.ID] {
			failed++
			fmt.Fprintf(out, "%s %s: duplicate switch ID\n", s.fail.Sprint("FAIL"), def.ID)
			continue
		}
		seen[def.ID] = true

		if err := rule.ValidateDefinition(def); err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", s.fail.Sprint("FAIL"), def.ID, err)
			continue
		}

		sw, err := rule.Build(def, matcher.DefaultOptions())
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", s.fail.Sprint("FAIL"), def.ID, err)
			continue
		}

		failures := rule.CheckExamples(def, sw)
		if len(failures) > 0 {
			failed++
			fmt.Fprintf(out, "%s %s\n", s.fail.Sprint("FAIL"), def.ID)
			for _, f := range failures {
				fmt.Fprintf(out, "    %s\n", f)
			}
			continue
		}

		fmt.Fprintf(out, "%s   %s (%d alternatives)\n", s.ok.Sprint("ok"), def.ID, sw.Len())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d switches failed checks", failed, len(defs))
	}
	infof("%d switches passed", len(defs))
	return nil
}
