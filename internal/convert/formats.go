package convert

import (
	"fmt"
	"sort"
	"strings"

	"apertiumsrt/internal/stanza"
	"apertiumsrt/internal/superblank"
)

const (
	// FormatProtected is the superblanked engine input.
	FormatProtected = "protected"
	// FormatSRT is canonical SubRip.
	FormatSRT = "srt"
)

var formatters = map[string]stanza.Formatter{
	FormatProtected: superblank.Format,
	FormatSRT:       stanza.FormatSRT,
}

// FormatterByName returns the formatter registered under name. An empty name
// selects the protected format.
func FormatterByName(name string) (stanza.Formatter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = FormatProtected
	}
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// FormatNames lists the registered formatter names.
func FormatNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
