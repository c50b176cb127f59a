package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/praetorian-inc/reswitch/pkg/matcher"
	"github.com/praetorian-inc/reswitch/pkg/rule"
	"github.com/praetorian-inc/reswitch/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	matchDefs    string
	matchSwitch  string
	matchFiles   []string
	matchContext int
	matchFormat  string
	matchColor   string
	matchUnique  bool
)

var matchCmd = &cobra.Command{
	Use:   "match [INPUT...]",
	Short: "Match input against a switch",
	Long: `Match every input against a switch and report the alternative that fired.

Inputs are taken from the arguments, else from each line of every --file,
else from the lines of standard input.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchDefs, "defs", "", "Path to definitions file or directory (default: built-in switches)")
	matchCmd.Flags().StringVar(&matchSwitch, "switch", "", "ID of the switch to apply (required)")
	matchCmd.Flags().StringArrayVar(&matchFiles, "file", nil, "Read input lines from file or glob, \"**\" allowed (repeatable)")
	matchCmd.Flags().IntVar(&matchContext, "context", 0, "Lines of context to show around each match")
	matchCmd.Flags().StringVar(&matchFormat, "format", "human", "Output format: human, json")
	matchCmd.Flags().StringVar(&matchColor, "color", "auto", "Color output: auto, always, never")
	matchCmd.Flags().BoolVar(&matchUnique, "unique", false, "Report each distinct capture once per alternative")
	matchCmd.MarkFlagRequired("switch")
}

// source is a named sequence of input lines.
type source struct {
	name  string
	lines []string
}

// hit pairs a reported hit with the result it came from.
type hit struct {
	types.Hit
	result    *matcher.Result[string]
	numGroups int // capturing groups of the alternative that fired
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchFormat != "human" && matchFormat != "json" {
		return fmt.Errorf("unknown output format: %s", matchFormat)
	}
	if matchSwitch == "" {
		return fmt.Errorf("--switch is required")
	}

	defs, err := loadDefinitions(matchDefs)
	if err != nil {
		return err
	}
	def := rule.Find(defs, matchSwitch)
	if def == nil {
		return fmt.Errorf("switch %q not found", matchSwitch)
	}
	if err := rule.ValidateDefinition(def); err != nil {
		return err
	}
	sw, err := rule.Build(def, matcher.DefaultOptions())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results [][]hit
	switch {
	case len(args) > 0:
		results = [][]hit{matchSource(ctx, sw, def.ID, source{name: "arg", lines: args})}
	case len(matchFiles) > 0:
		paths, err := expandFiles(matchFiles)
		if err != nil {
			return err
		}
		infof("matching %d files", len(paths))
		results, err = matchFilesConcurrently(ctx, sw, def.ID, paths)
		if err != nil {
			return err
		}
	default:
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		results = [][]hit{matchSource(ctx, sw, def.ID, source{name: "-", lines: lines})}
	}

	hits := flatten(results, matchUnique)
	infof("%d matches against %s", len(hits), def.ID)

	if matchFormat == "json" {
		return outputMatchJSON(cmd, hits)
	}
	s, err := resolveColor(matchColor)
	if err != nil {
		return err
	}
	return outputMatchHuman(cmd, s, hits)
}

// matchFilesConcurrently reads and matches every file on its own goroutine.
// Results keep the order of paths.
func matchFilesConcurrently(ctx context.Context, sw *matcher.Switch[string], switchID string, paths []string) ([][]hit, error) {
	results := make([][]hit, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			lines, err := readLines(f)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			results[i] = matchSource(ctx, sw, switchID, source{name: path, lines: lines})
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// matchSource applies sw to every line of src. Lines that fail to match
// because of an engine error are skipped with a warning.
func matchSource(ctx context.Context, sw *matcher.Switch[string], switchID string, src source) []hit {
	var hits []hit

	for i, line := range src.lines {
		if ctx.Err() != nil {
			return hits
		}

		res, err := sw.Match(line)
		if err != nil {
			warnf("%s:%d: skipping line: %v", src.name, i+1, err)
			continue
		}
		if res == nil {
			continue
		}

		h := hit{
			Hit: types.Hit{
				Source:      src.name,
				Line:        i + 1,
				Column:      types.ComputeColumn(line, res.Offset),
				Input:       line,
				SwitchID:    switchID,
				Alternative: res.Alternative,
				Value:       res.Value,
				Groups:      res.Strings(),
			},
			result:    res,
			numGroups: sw.NumGroups(res.Alternative),
		}
		h.Before, h.After = types.ContextLines(src.lines, i, matchContext)
		hits = append(hits, h)
	}

	return hits
}

func flatten(results [][]hit, unique bool) []hit {
	var dedup *matcher.Deduplicator[string]
	if unique {
		dedup = matcher.NewContentDeduplicator[string]()
	}

	var out []hit
	for _, hits := range results {
		for _, h := range hits {
			if dedup != nil {
				if dedup.IsDuplicate(h.result) {
					continue
				}
				dedup.Add(h.result)
			}
			out = append(out, h)
		}
	}
	return out
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func outputMatchJSON(cmd *cobra.Command, hits []hit) error {
	out := make([]types.Hit, len(hits))
	for i, h := range hits {
		out[i] = h.Hit
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputMatchHuman(cmd *cobra.Command, s *styles, hits []hit) error {
	out := cmd.OutOrStdout()

	for i, h := range hits {
		if matchContext > 0 && i > 0 {
			fmt.Fprintln(out, s.context.Sprint("--"))
		}

		for j, line := range h.Before {
			n := h.Line - len(h.Before) + j
			fmt.Fprintf(out, "%s  %s\n", s.context.Sprintf("%s-%d-", h.Source, n), s.context.Sprint(line))
		}

		label := fmt.Sprintf("#%d", h.Alternative)
		if h.result.HasValue {
			label = h.Value
		}
		fmt.Fprintf(out, "%s  %s  %s\n",
			s.location.Sprintf("%s:%d:%d:", h.Source, h.Line, h.Column),
			s.value.Sprintf("[%s]", label),
			highlight(s, h.Input, h.result.Offset, h.Groups[0]))

		if h.numGroups > 0 {
			for g := 1; g < len(h.Groups); g++ {
				text, ok := h.result.Group(g)
				if !ok {
					text = "<unmatched>"
				}
				fmt.Fprintf(out, "    %d: %s\n", g, s.match.Sprint(text))
			}
		}

		for j, line := range h.After {
			fmt.Fprintf(out, "%s  %s\n", s.context.Sprintf("%s-%d-", h.Source, h.Line+j+1), s.context.Sprint(line))
		}
	}

	return nil
}

// highlight colors the whole match within its input line.
func highlight(s *styles, input string, offset int, whole string) string {
	end := offset + len(whole)
	if offset < 0 || end > len(input) {
		return input
	}
	return input[:offset] + s.match.Sprint(whole) + input[end:]
}
