package publish

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"loadorder-manager/core/reconcile"
)

const pluginsHeader = "# This file is generated by loadorder-manager. Do not edit."

// RenderPluginsTxt renders an order in plugins.txt format: one plugin per
// line, enabled plugins prefixed with '*'.
func RenderPluginsTxt(order []reconcile.Entry) []byte {
	var buf bytes.Buffer
	buf.WriteString(pluginsHeader)
	buf.WriteByte('\n')
	for _, e := range order {
		if e.Enabled {
			buf.WriteByte('*')
		}
		buf.WriteString(e.ID)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ParsePluginsTxt reads a plugins.txt file. Ranks follow line order; blank
// lines and '#' comments are skipped.
func ParsePluginsTxt(r io.Reader) ([]reconcile.Entry, error) {
	var order []reconcile.Entry
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		enabled := strings.HasPrefix(text, "*")
		id := strings.TrimSpace(strings.TrimPrefix(text, "*"))
		if id == "" {
			return nil, fmt.Errorf("line %d: empty plugin name", line)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate plugin %s", line, id)
		}
		seen[id] = struct{}{}

		order = append(order, reconcile.Entry{ID: id, Enabled: enabled, Rank: len(order)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plugins.txt: %w", err)
	}
	return order, nil
}
