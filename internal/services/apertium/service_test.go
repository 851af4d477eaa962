package apertium

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"apertiumsrt/internal/language"
	"apertiumsrt/internal/logging"
	"apertiumsrt/internal/services"
)

var enEs = language.Pair{Source: "en", Target: "es"}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"defaults", DefaultConfig(), []string{"-un", "en-es", "in.apy", "out.apy"}},
		{"unknown only", Config{SuppressUnknown: true}, []string{"-u", "en-es", "in.apy", "out.apy"}},
		{"no flags", Config{}, []string{"en-es", "in.apy", "out.apy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewService(tt.cfg, logging.NewNop()).BuildArgs(enEs, "in.apy", "out.apy")
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("BuildArgs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewServiceDefaultsCommand(t *testing.T) {
	if cmd := NewService(Config{}, nil).Command(); cmd != DefaultCommand {
		t.Fatalf("expected default command, got %q", cmd)
	}
}

func TestTranslateUsesCommandRunner(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.apy")
	dst := filepath.Join(dir, "out.apy")

	svc := NewService(DefaultConfig(), logging.NewNop())
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return os.WriteFile(args[len(args)-1], []byte("translated"), 0o644)
	})

	if err := svc.Translate(context.Background(), enEs, src, dst); err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if gotName != DefaultCommand {
		t.Fatalf("unexpected command %q", gotName)
	}
	if gotArgs[len(gotArgs)-2] != src {
		t.Fatalf("expected source path argument, got %v", gotArgs)
	}
}

func TestTranslateRunnerFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultConfig(), logging.NewNop())
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1")
	})
	err := svc.Translate(context.Background(), enEs, filepath.Join(dir, "in"), filepath.Join(dir, "out"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTranslateMissingOutput(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(DefaultConfig(), logging.NewNop())
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	err := svc.Translate(context.Background(), enEs, filepath.Join(dir, "in"), filepath.Join(dir, "out"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "no output") {
		t.Fatalf("expected missing output detail, got %v", err)
	}
}

func TestTranslateMissingBinary(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(Config{Command: "clearly-not-present-apertium"}, logging.NewNop())
	err := svc.Translate(context.Background(), enEs, filepath.Join(dir, "in"), filepath.Join(dir, "out"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTranslateRunsExternalProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-apertium")
	script := "#!/bin/sh\nfor a; do prev=$cur; cur=$a; done\ncp \"$prev\" \"$cur\"\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	src := filepath.Join(dir, "in.apy")
	dst := filepath.Join(dir, "out.apy")
	if err := os.WriteFile(src, []byte("[\n1\n]\nhello\n\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Command = stub
	if err := NewService(cfg, logging.NewNop()).Translate(context.Background(), enEs, src, dst); err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "[\n1\n]\nhello\n\n" {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestTranslateNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "failing-apertium")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho 'mode not installed' >&2\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Command = stub
	err := NewService(cfg, logging.NewNop()).Translate(context.Background(), enEs, filepath.Join(dir, "in"), filepath.Join(dir, "out"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "mode not installed") {
		t.Fatalf("expected engine output in error, got %v", err)
	}
}
