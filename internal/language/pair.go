package language

import (
	"fmt"
	"regexp"
	"strings"
)

var codePattern = regexp.MustCompile(`^[a-z]{2,3}(_[A-Za-z0-9]+)?$`)

// Pair is a translation direction understood by the Apertium engine.
type Pair struct {
	Source string
	Target string
}

// ParsePair splits a `src-dst` token. Only the first dash separates the two
// sides; each side must be a lowercase language code with an optional
// underscore variant.
func ParsePair(token string) (Pair, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Pair{}, fmt.Errorf("language pair is empty")
	}
	src, dst, ok := strings.Cut(token, "-")
	if !ok {
		return Pair{}, fmt.Errorf("language pair %q: expected src-dst", token)
	}
	if !codePattern.MatchString(src) {
		return Pair{}, fmt.Errorf("language pair %q: invalid source language %q", token, src)
	}
	if !codePattern.MatchString(dst) {
		return Pair{}, fmt.Errorf("language pair %q: invalid target language %q", token, dst)
	}
	return Pair{Source: src, Target: dst}, nil
}

// String returns the token form passed to the engine.
func (p Pair) String() string {
	return p.Source + "-" + p.Target
}

// Describe returns a human-readable form such as "English → Spanish".
func (p Pair) Describe() string {
	return DisplayName(p.Source) + " → " + DisplayName(p.Target)
}
