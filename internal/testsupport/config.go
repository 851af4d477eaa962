package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"apertiumsrt/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp work directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Conversion.WorkDir = filepath.Join(base, "work")
	cfgVal.Apertium.Command = filepath.Join(base, "bin", "apertium-missing")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if dir := builder.cfg.Conversion.WorkDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir work dir: %v", err)
		}
	}
	return builder.cfg
}

// WithPair sets the default language pair on the test config.
func WithPair(pair string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Apertium.Pair = pair
	}
}

// WithCodec sets the subtitle codec on the test config.
func WithCodec(codec string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.Codec = codec
	}
}

// WithInputDirOutputs clears the work directory so outputs land beside the input.
func WithInputDirOutputs() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Conversion.WorkDir = ""
	}
}

// WithApertiumStub installs a fake engine that pipes its input file through
// `sed -e sedExpr` into the output file. An empty expression copies the input.
func WithApertiumStub(sedExpr string) ConfigOption {
	return func(b *configBuilder) {
		filter := "cat \"$prev\""
		if sedExpr != "" {
			filter = "sed -e '" + sedExpr + "' \"$prev\""
		}
		script := "#!/bin/sh\nfor a; do prev=$cur; cur=$a; done\n" + filter + " > \"$cur\"\n"
		b.cfg.Apertium.Command = writeStub(b, "apertium", script)
	}
}

// WithFailingApertium installs a fake engine that exits non-zero without output.
func WithFailingApertium() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Apertium.Command = writeStub(b, "apertium", "#!/bin/sh\necho 'Error: Mode not installed' >&2\nexit 1\n")
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the apertium binary is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"apertium"}
		}
		for _, name := range names {
			writeStub(b, name, "#!/bin/sh\nexit 0\n")
		}
		if len(names) == 1 && names[0] == "apertium" {
			b.cfg.Apertium.Command = "apertium"
		}

		binDir := filepath.Join(b.baseDir, "bin")
		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

func writeStub(b *configBuilder, name, script string) string {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
