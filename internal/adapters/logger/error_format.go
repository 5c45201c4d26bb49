package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	mainIndent  = "       "
	causeIndent = "      "
)

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	Message string
	// Metadata is nil for errors that cannot carry any.
	Metadata map[string]any
}

// annotated matches errors that report their own message and metadata
// separately from their cause, such as *zerr.Error.
type annotated interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks err outermost first. Layers with an empty
// message only carry metadata, which is folded into the nearest layer with
// a message.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)
	for current := err; current != nil; current = errors.Unwrap(current) {
		a, ok := current.(annotated)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := a.Metadata()
		if a.Message() != "" {
			entries = append(entries, ErrorEntry{Message: a.Message(), Metadata: merge(pending, meta)})
			pending = nil
			continue
		}
		if len(entries) > 0 {
			last := &entries[len(entries)-1]
			last.Metadata = merge(last.Metadata, meta)
			continue
		}
		pending = merge(pending, meta)
	}
	return entries
}

func merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		return src
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// formatErrorEntries renders entries as a headline followed by a
// "Caused by" list. Metadata keys are sorted under their message.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		head, indent := "Error: ", mainIndent
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", causeIndent
		}

		msg := strings.Split(entry.Message, "\n")
		lines = append(lines, head+msg[0])
		for _, line := range msg[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
