//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/reswitch/pkg/matcher"
	"github.com/praetorian-inc/reswitch/pkg/rule"
	"github.com/praetorian-inc/reswitch/pkg/types"
)

var (
	switches   = make(map[int]*matcher.Switch[string])
	switchesMu sync.RWMutex
	nextID     int
)

// matchResult is the JSON shape returned by ReswitchMatch.
type matchResult struct {
	Matched     bool     `json:"matched"`
	Alternative *int     `json:"alternative,omitempty"`
	Value       *string  `json:"value,omitempty"`
	Index       *int     `json:"index,omitempty"`
	Offset      *int     `json:"offset,omitempty"`
	Groups      []string `json:"groups,omitempty"`
}

// newSwitch builds a switch from a definitions document.
// JS: ReswitchNew(defsYAML, switchID) -> {handle} or {error}
// defsYAML may be "builtin" to use the built-in definitions.
func newSwitch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "defsYAML and switchID arguments required"}
	}

	defsYAML := args[0].String()
	switchID := args[1].String()

	loader := rule.NewLoader()
	var (
		defs []*types.Definition
		err  error
	)
	if defsYAML == "builtin" {
		defs, err = loader.LoadBuiltin()
	} else {
		defs, err = loader.LoadDefinitions([]byte(defsYAML))
	}
	if err != nil {
		return map[string]interface{}{"error": "failed to load definitions: " + err.Error()}
	}

	def := rule.Find(defs, switchID)
	if def == nil {
		return map[string]interface{}{"error": "switch not found: " + switchID}
	}
	if err := rule.ValidateDefinition(def); err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	sw, err := rule.Build(def, matcher.DefaultOptions())
	if err != nil {
		return map[string]interface{}{"error": "failed to build switch: " + err.Error()}
	}

	// Register switch
	switchesMu.Lock()
	id := nextID
	nextID++
	switches[id] = sw
	switchesMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// match applies a switch to one input string.
// JS: ReswitchMatch(handle, input) -> JSON result or {error}
func match(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and input arguments required"}
	}

	handle := args[0].Int()
	input := args[1].String()

	switchesMu.RLock()
	sw, ok := switches[handle]
	switchesMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid switch handle"}
	}

	res, err := sw.Match(input)
	if err != nil {
		return map[string]interface{}{"error": "match failed: " + err.Error()}
	}

	out := matchResult{}
	if res != nil {
		out.Matched = true
		out.Alternative = &res.Alternative
		out.Index = &res.Index
		out.Offset = &res.Offset
		out.Groups = res.Strings()
		if res.HasValue {
			out.Value = &res.Value
		}
	}

	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}
	return string(jsonBytes)
}

// closeSwitch releases a switch handle.
// JS: ReswitchClose(handle)
func closeSwitch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}

	switchesMu.Lock()
	delete(switches, args[0].Int())
	switchesMu.Unlock()
	return nil
}

// getBuiltinSwitches returns the built-in definitions.
// JS: ReswitchGetBuiltinSwitches() -> JSON array or {error}
func getBuiltinSwitches(this js.Value, args []js.Value) interface{} {
	defs, err := rule.NewLoader().LoadBuiltin()
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin switches: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(defs)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal switches: " + err.Error()}
	}
	return string(jsonBytes)
}
