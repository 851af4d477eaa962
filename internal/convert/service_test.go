package convert_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"apertiumsrt/internal/charset"
	"apertiumsrt/internal/convert"
	"apertiumsrt/internal/language"
	"apertiumsrt/internal/logging"
	"apertiumsrt/internal/services"
	"apertiumsrt/internal/testsupport"
)

const protectedSample = "[\n1\n00:00:01,000 --> 00:00:02,000\n]\nHello world\n\n" +
	"[\n2\n00:00:03,000 --> 00:00:04,000\n]\nSecond line\n\n"

type recordingTranslator struct {
	calls []language.Pair
	input string
	err   error
}

func (r *recordingTranslator) Translate(_ context.Context, pair language.Pair, src, dst string) error {
	r.calls = append(r.calls, pair)
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	r.input = string(data)
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(dst, []byte(strings.ReplaceAll(string(data), "Hello world", "Hola mundo")), 0o644)
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	return testsupport.WriteFile(t, filepath.Join(t.TempDir(), name), content)
}

func TestRunProtectOnlyWritesBesideInput(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithInputDirOutputs())
	input := writeInput(t, "film.en.srt", testsupport.SampleSRT)

	svc := convert.NewService(cfg, logging.NewNop())
	result, err := svc.Run(context.Background(), convert.Request{Input: input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := filepath.Join(filepath.Dir(input), "film_lang1_srt.apy")
	if result.OutputPath != want {
		t.Fatalf("output = %q, want %q", result.OutputPath, want)
	}
	if got := testsupport.ReadFile(t, want); got != protectedSample {
		t.Fatalf("protected output mismatch:\n%q", got)
	}
	if result.Stanzas != 2 || result.Translated {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.RunID == "" {
		t.Fatal("expected run id")
	}
	requireUnlocked(t, filepath.Join(filepath.Dir(input), ".film.apertiumsrt.lock"))
}

func requireUnlocked(t *testing.T, path string) {
	t.Helper()
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		t.Fatalf("TryLock %s: %v", path, err)
	}
	if !ok {
		t.Fatalf("expected %s to be released", path)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}

func TestRunFailsFastWhenBaseNameIsLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := writeInput(t, "film.en.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())

	held := flock.New(filepath.Join(cfg.Conversion.WorkDir, ".film.apertiumsrt.lock"))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}

	_, err = svc.Run(context.Background(), convert.Request{Input: input})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "another conversion is already using film") {
		t.Fatalf("unexpected error %v", err)
	}
	testsupport.RequireMissing(t, filepath.Join(cfg.Conversion.WorkDir, "film_lang1_srt.apy"))

	if err := held.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := svc.Run(context.Background(), convert.Request{Input: input}); err != nil {
		t.Fatalf("Run after release: %v", err)
	}
}

func TestRunRejectsInvalidUTF8WithoutCodec(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := writeInput(t, "cafe.srt", "1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n")
	svc := convert.NewService(cfg, logging.NewNop())

	_, err := svc.Run(context.Background(), convert.Request{Input: input})
	if !errors.Is(err, charset.ErrInvalidText) {
		t.Fatalf("expected invalid text error, got %v", err)
	}
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input marker, got %v", err)
	}
	testsupport.RequireMissing(t, filepath.Join(cfg.Conversion.WorkDir, "cafe_lang1_srt.apy"))
}

func TestRunProtectOnlyUsesWorkDirAndOutfile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := writeInput(t, "film.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())

	result, err := svc.Run(context.Background(), convert.Request{Input: input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := filepath.Join(cfg.Conversion.WorkDir, "film_lang1_srt.apy"); result.OutputPath != want {
		t.Fatalf("output = %q, want %q", result.OutputPath, want)
	}

	outfile := filepath.Join(t.TempDir(), "custom.apy")
	result, err = svc.Run(context.Background(), convert.Request{Input: input, Outfile: outfile})
	if err != nil {
		t.Fatalf("Run with outfile: %v", err)
	}
	if result.OutputPath != outfile {
		t.Fatalf("output = %q, want %q", result.OutputPath, outfile)
	}
	if got := testsupport.ReadFile(t, outfile); got != protectedSample {
		t.Fatalf("outfile content mismatch:\n%q", got)
	}
}

func TestRunCanonicalFormat(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithInputDirOutputs())
	input := writeInput(t, "clip.srt", "1\n0:00:01.5,0:00:02.25\nHi\n")
	svc := convert.NewService(cfg, logging.NewNop())

	result, err := svc.Run(context.Background(), convert.Request{Input: input, Format: "srt"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := filepath.Join(filepath.Dir(input), "clip-canonical.srt"); result.OutputPath != want {
		t.Fatalf("output = %q, want %q", result.OutputPath, want)
	}
	want := "1\n00:00:01,500 --> 00:00:02,250\nHi\n\n"
	if got := testsupport.ReadFile(t, result.OutputPath); got != want {
		t.Fatalf("canonical output = %q, want %q", got, want)
	}
}

func TestRunTranslateWithInjectedTranslator(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPair("en-es"))
	input := writeInput(t, "film.en.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())
	tr := &recordingTranslator{}
	svc.WithTranslator(tr)

	result, err := svc.Run(context.Background(), convert.Request{Input: input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tr.calls) != 1 || tr.calls[0].String() != "en-es" {
		t.Fatalf("unexpected translator calls %+v", tr.calls)
	}
	if tr.input != protectedSample {
		t.Fatalf("engine input mismatch:\n%q", tr.input)
	}
	final := filepath.Join(cfg.Conversion.WorkDir, "film-es.srt")
	if result.OutputPath != final || !result.Translated {
		t.Fatalf("unexpected result %+v", result)
	}
	want := strings.ReplaceAll(testsupport.SampleSRT, "Hello world", "Hola mundo") + "\n"
	if got := testsupport.ReadFile(t, final); got != want {
		t.Fatalf("final output = %q, want %q", got, want)
	}
	testsupport.RequireMissing(t, filepath.Join(cfg.Conversion.WorkDir, "film-es_srt.apy"))
	testsupport.RequireMissing(t, filepath.Join(cfg.Conversion.WorkDir, "film_lang2_srt.apy"))
}

func TestRunRequestPairOverridesConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPair("en-es"))
	input := writeInput(t, "film.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())
	tr := &recordingTranslator{}
	svc.WithTranslator(tr)

	result, err := svc.Run(context.Background(), convert.Request{Input: input, Pair: "es-ca_valencia", KeepIntermediate: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tr.calls[0].Target != "ca_valencia" {
		t.Fatalf("target = %q", tr.calls[0].Target)
	}
	if want := filepath.Join(cfg.Conversion.WorkDir, "film-ca_valencia.srt"); result.OutputPath != want {
		t.Fatalf("output = %q, want %q", result.OutputPath, want)
	}
	if len(result.Intermediates) != 2 {
		t.Fatalf("expected intermediates kept, got %v", result.Intermediates)
	}
	for _, path := range result.Intermediates {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("intermediate %s: %v", path, err)
		}
	}
}

func TestRunTranslateWithStubEngine(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithPair("en-es"),
		testsupport.WithInputDirOutputs(),
		testsupport.WithApertiumStub("s/Second line/Segunda linea/"),
	)
	input := writeInput(t, "movie.srt", testsupport.SampleSRT)
	outfile := filepath.Join(t.TempDir(), "out.srt")
	svc := convert.NewService(cfg, logging.NewNop())

	result, err := svc.Run(context.Background(), convert.Request{Input: input, Outfile: outfile})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != outfile {
		t.Fatalf("output = %q", result.OutputPath)
	}
	got := testsupport.ReadFile(t, outfile)
	if !strings.Contains(got, "2\n00:00:03,000 --> 00:00:04,000\nSegunda linea\n") {
		t.Fatalf("unexpected final output:\n%s", got)
	}
	if strings.Contains(got, "[") || strings.Contains(got, "]") {
		t.Fatalf("markers left in output:\n%s", got)
	}
}

func TestRunEngineFailureKeepsProtectedFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPair("en-es"), testsupport.WithFailingApertium())
	input := writeInput(t, "film.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())

	_, err := svc.Run(context.Background(), convert.Request{Input: input})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Mode not installed") {
		t.Fatalf("expected engine stderr in error, got %v", err)
	}
	protected := filepath.Join(cfg.Conversion.WorkDir, "film-es_srt.apy")
	if got := testsupport.ReadFile(t, protected); got != protectedSample {
		t.Fatalf("protected file mismatch:\n%q", got)
	}
	testsupport.RequireMissing(t, filepath.Join(cfg.Conversion.WorkDir, "film-es.srt"))
}

func TestRunTranslatorErrorPropagates(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPair("en-es"))
	input := writeInput(t, "film.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())
	boom := services.Wrap(services.ErrExternalTool, "translate", "apertium", "boom", nil)
	svc.WithTranslator(&recordingTranslator{err: boom})

	if _, err := svc.Run(context.Background(), convert.Request{Input: input}); !errors.Is(err, boom) {
		t.Fatalf("expected translator error, got %v", err)
	}
}

func TestRunValidationErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := writeInput(t, "film.srt", testsupport.SampleSRT)
	svc := convert.NewService(cfg, logging.NewNop())

	tests := []struct {
		name   string
		req    convert.Request
		marker error
	}{
		{name: "missing input", req: convert.Request{Input: filepath.Join(t.TempDir(), "nope.srt")}, marker: services.ErrInvalidInput},
		{name: "directory input", req: convert.Request{Input: t.TempDir()}, marker: services.ErrInvalidInput},
		{name: "empty input", req: convert.Request{}, marker: services.ErrInvalidInput},
		{name: "bad pair", req: convert.Request{Input: input, Pair: "english"}, marker: services.ErrValidation},
		{name: "bad codec", req: convert.Request{Input: input, Codec: "klingon-8"}, marker: services.ErrValidation},
		{name: "bad format", req: convert.Request{Input: input, Format: "vtt"}, marker: services.ErrValidation},
		{name: "srt format with pair", req: convert.Request{Input: input, Pair: "en-es", Format: "srt"}, marker: services.ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tc.req)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
		})
	}
}

func TestRunUsesConfiguredCodec(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCodec("latin-1"), testsupport.WithInputDirOutputs())
	input := writeInput(t, "cafe.srt", "1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n")
	svc := convert.NewService(cfg, logging.NewNop())

	result, err := svc.Run(context.Background(), convert.Request{Input: input})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "[\n1\n00:00:01,000 --> 00:00:02,000\n]\ncaf\xe9\n\n"
	if got := testsupport.ReadFile(t, result.OutputPath); got != want {
		t.Fatalf("latin-1 output = %q, want %q", got, want)
	}
}

func TestDeblankFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	svc := convert.NewService(cfg, logging.NewNop())
	input := writeInput(t, "film_lang2_srt.apy", protectedSample)

	out, err := svc.DeblankFile(context.Background(), input, "", "")
	if err != nil {
		t.Fatalf("DeblankFile: %v", err)
	}
	if want := strings.TrimSuffix(input, ".apy") + ".srt"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if got := testsupport.ReadFile(t, out); got != testsupport.SampleSRT+"\n" {
		t.Fatalf("deblanked = %q", got)
	}

	if _, err := svc.DeblankFile(context.Background(), filepath.Join(t.TempDir(), "missing.apy"), "", ""); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLoadStanzas(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	svc := convert.NewService(cfg, logging.NewNop())
	input := writeInput(t, "film.srt", testsupport.SampleSRT)

	stanzas, err := svc.LoadStanzas(context.Background(), input, "")
	if err != nil {
		t.Fatalf("LoadStanzas: %v", err)
	}
	if len(stanzas) != 2 || stanzas[1].Text != "Second line" {
		t.Fatalf("unexpected stanzas %+v", stanzas)
	}
}
