// Package protocol implements the control-header wire format spoken between
// zowex and the Zowe daemon.
//
// The daemon interleaves plain output with header blocks of the form
//
//	x-zowe-daemon-headers:8;x-zowe-daemon-version:1;...;x-zowe-daemon-end:0
//
// Header blocks may appear at the start of a line or after some plain data
// on the same line. Nothing in this package performs I/O.
package protocol

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Header names. These must stay in sync with the daemon's header writer.
const (
	HeaderStart    = "x-zowe-daemon-headers"
	HeaderVersion  = "x-zowe-daemon-version"
	HeaderExit     = "x-zowe-daemon-exit"
	HeaderStdout   = "x-zowe-daemon-stdout"
	HeaderStderr   = "x-zowe-daemon-stderr"
	HeaderPrompt   = "x-zowe-daemon-prompt"
	HeaderProgress = "x-zowe-daemon-progress"
	HeaderEnd      = "x-zowe-daemon-end"
)

const (
	// Version is the only header protocol version this client understands.
	Version = 1

	// MinHeaderFields is the number of fields in a version 1 header block.
	MinHeaderFields = 8

	fieldSeparator = ";"
	valueSeparator = ":"
)

// Prompt indicator values.
const (
	PromptNone   = 0
	PromptPlain  = 1
	PromptMasked = 2
)

// canonicalOrder is the field order the daemon writes for version 1.
var canonicalOrder = []string{
	HeaderStart,
	HeaderVersion,
	HeaderExit,
	HeaderStdout,
	HeaderStderr,
	HeaderPrompt,
	HeaderProgress,
	HeaderEnd,
}

// HeaderSet holds the most recently received complete header block.
// An empty set means no usable headers have been seen.
type HeaderSet map[string]int

// Get returns the value of the named header, or 0 when it is absent.
func (h HeaderSet) Get(name string) int {
	return h[name]
}

// IsEmpty reports whether the set holds no headers.
func (h HeaderSet) IsEmpty() bool {
	return len(h) == 0
}

// Exit returns the exit indicator.
func (h HeaderSet) Exit() int {
	return h.Get(HeaderExit)
}

// Prompt returns the prompt indicator (PromptNone, PromptPlain or PromptMasked).
func (h HeaderSet) Prompt() int {
	return h.Get(HeaderPrompt)
}

// Progress returns the progress indicator.
func (h HeaderSet) Progress() int {
	return h.Get(HeaderProgress)
}

// Clone returns an independent copy of the set.
func (h HeaderSet) Clone() HeaderSet {
	out := make(HeaderSet, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// ParseHeaders parses a header block from the start of line.
//
// Only the first physical line of the input is examined. A block is valid
// when it has at least MinHeaderFields fields, the first field names
// HeaderStart, the last field names HeaderEnd, and every value is an
// integer. A valid block must also carry HeaderVersion equal to Version.
// Anything else yields an empty set; malformed input is never an error so
// that foreign output can always be rendered as text.
func ParseHeaders(line string) HeaderSet {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, fieldSeparator)
	if len(fields) < MinHeaderFields {
		return HeaderSet{}
	}
	if !strings.Contains(fields[0], HeaderStart) || !strings.Contains(fields[len(fields)-1], HeaderEnd) {
		return HeaderSet{}
	}

	headers := make(HeaderSet, len(fields))
	for _, field := range fields {
		key, raw, ok := strings.Cut(field, valueSeparator)
		if !ok {
			return HeaderSet{}
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return HeaderSet{}
		}
		headers[key] = value
	}

	version, ok := headers[HeaderVersion]
	if !ok || version != Version {
		return HeaderSet{}
	}

	return headers
}

// FormatHeaders renders a version 1 header block, without a trailing
// newline. Fields missing from values are written as 0; HeaderStart and
// HeaderVersion are always set to the field count and Version. Extra keys
// in values are appended, in sorted order, before HeaderEnd.
func FormatHeaders(values map[string]int) string {
	var extra []string
	for k := range values {
		if !slices.Contains(canonicalOrder, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	total := len(canonicalOrder) + len(extra)
	parts := make([]string, 0, total)
	for _, name := range canonicalOrder {
		if name == HeaderEnd {
			for _, k := range extra {
				parts = append(parts, fmt.Sprintf("%s%s%d", k, valueSeparator, values[k]))
			}
		}

		value := values[name]
		switch name {
		case HeaderStart:
			value = total
		case HeaderVersion:
			value = Version
		}
		parts = append(parts, fmt.Sprintf("%s%s%d", name, valueSeparator, value))
	}

	return strings.Join(parts, fieldSeparator)
}
