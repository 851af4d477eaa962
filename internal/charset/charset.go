package charset

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultName is the codec used when none is configured.
const DefaultName = "UTF-8"

// ErrInvalidText marks input bytes that are not valid in the selected codec.
var ErrInvalidText = errors.New("invalid text for codec")

// Codec converts between an on-disk text encoding and UTF-8 strings.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Lookup resolves a codec by name. An empty name selects UTF-8.
func Lookup(name string) (Codec, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Codec{name: DefaultName, enc: unicode.UTF8}, nil
	}
	for _, candidate := range candidates(trimmed) {
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return Codec{name: canonicalName(enc, trimmed), enc: enc}, nil
		}
		if enc, err := htmlindex.Get(candidate); err == nil && enc != nil {
			return Codec{name: canonicalName(enc, trimmed), enc: enc}, nil
		}
	}
	return Codec{}, fmt.Errorf("unknown codec %q", name)
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Codec {
	codec, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return codec
}

// Name returns the canonical registry name of the codec.
func (c Codec) Name() string {
	return c.name
}

// Decode converts encoded bytes to a UTF-8 string. For UTF-8 codecs,
// invalid byte sequences are an error instead of being replaced with U+FFFD.
func (c Codec) Decode(data []byte) (string, error) {
	if (c.enc == nil || c.name == DefaultName) && !utf8.Valid(data) {
		return "", fmt.Errorf("decode %s: %w: input is not valid UTF-8 (pass --codec, e.g. --codec latin-1)", DefaultName, ErrInvalidText)
	}
	out, err := c.encoding().NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to the codec's byte form. Characters the
// codec cannot represent are an error.
func (c Codec) Encode(text string) ([]byte, error) {
	out, err := c.encoding().NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.name, err)
	}
	return out, nil
}

// ReadFile reads and decodes path.
func (c Codec) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return c.Decode(data)
}

// WriteFile encodes text and writes it to path.
func (c Codec) WriteFile(path, text string) error {
	data, err := c.Encode(text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c Codec) encoding() encoding.Encoding {
	if c.enc == nil {
		return unicode.UTF8
	}
	return c.enc
}

func candidates(name string) []string {
	lower := strings.ToLower(name)
	dashed := strings.ReplaceAll(lower, "_", "-")
	compact := strings.ReplaceAll(dashed, "-", "")
	out := []string{lower}
	for _, value := range []string{dashed, compact} {
		if value != out[len(out)-1] {
			out = append(out, value)
		}
	}
	return out
}

// canonicalName prefers the MIME name ("ISO-8859-1") over the IANA primary
// name ("ISO_8859-1:1987").
func canonicalName(enc encoding.Encoding, fallback string) string {
	if name, err := ianaindex.MIME.Name(enc); err == nil && name != "" {
		return name
	}
	if name, err := htmlindex.Name(enc); err == nil && name != "" {
		return name
	}
	if name, err := ianaindex.IANA.Name(enc); err == nil && name != "" {
		return name
	}
	return fallback
}
