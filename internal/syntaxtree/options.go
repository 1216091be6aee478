package syntaxtree

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Empty is the neutral document returned when there is nothing to export.
const Empty = "{}"

// ErrInvalidOptions marks an options blob that cannot be decoded.
var ErrInvalidOptions = errors.New("invalid syntax tree options")

// Options control the exported document. The zero value gives a compact,
// unresolved tree without source locations.
type Options struct {
	IncludeResolvedTypes   bool   `json:"include_resolved_types,omitempty"`
	MaxDepth               int    `json:"max_depth,omitempty"` // 0: без ограничения
	PrettyPrint            bool   `json:"pretty_print,omitempty"`
	IncludeSourceLocations bool   `json:"include_source_locations,omitempty"`
	IncludeComments        bool   `json:"include_comments,omitempty"`
	SkipFunctionBodies     bool   `json:"skip_function_bodies,omitempty"`
	Item                   string `json:"item,omitempty"`
}

// Encode serialises options for the engine boundary.
func (o Options) Encode() []byte {
	data, err := json.Marshal(o)
	if err != nil {
		// Options состоит только из простых полей
		panic(fmt.Errorf("syntaxtree: encode options: %w", err))
	}
	return data
}

// DecodeOptions parses an options blob. An empty blob means defaults.
func DecodeOptions(blob []byte) (Options, error) {
	var opts Options
	if len(blob) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(blob, &opts); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if opts.MaxDepth < 0 {
		return Options{}, fmt.Errorf("%w: negative max_depth %d", ErrInvalidOptions, opts.MaxDepth)
	}
	return opts, nil
}
