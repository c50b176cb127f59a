package types

// Hit is one input line selected by a switch, as reported by the CLI.
type Hit struct {
	Source      string   `json:"source"`           // file path, "-" for stdin, "arg" for arguments
	Line        int      `json:"line"`             // 1-indexed line within Source
	Column      int      `json:"column"`           // 1-indexed column of the match
	Input       string   `json:"input"`            // the matched line
	SwitchID    string   `json:"switch_id"`        // switch that was applied
	Alternative int      `json:"alternative"`      // zero-based alternative that fired
	Value       string   `json:"value,omitempty"`  // tagged value, if any
	Groups      []string `json:"groups"`           // Groups[0] is the whole match
	Before      []string `json:"before,omitempty"` // context lines preceding Input
	After       []string `json:"after,omitempty"`  // context lines following Input
}
