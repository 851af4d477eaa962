package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"apertiumsrt/internal/charset"
	"apertiumsrt/internal/config"
	"apertiumsrt/internal/language"
	"apertiumsrt/internal/logging"
	"apertiumsrt/internal/services"
	"apertiumsrt/internal/services/apertium"
	"apertiumsrt/internal/stanza"
	"apertiumsrt/internal/superblank"
)

// Translator runs the engine over a protected file.
type Translator interface {
	Translate(ctx context.Context, pair language.Pair, src, dst string) error
}

// Request describes one conversion. Empty fields fall back to configuration.
type Request struct {
	Input            string
	Pair             string
	Codec            string
	Outfile          string
	Format           string
	KeepIntermediate bool
}

// Result reports what a conversion produced.
type Result struct {
	RunID         string
	OutputPath    string
	Stanzas       int
	Translated    bool
	Intermediates []string
	Duration      time.Duration
}

// Service converts subtitle files.
type Service struct {
	cfg        *config.Config
	logger     *slog.Logger
	translator Translator
	newRunID   func() string

	watchDebounce time.Duration
}

// NewService builds a conversion service backed by the configured engine.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	engine := apertium.NewService(apertium.Config{
		Command:         cfg.Apertium.Command,
		SuppressUnknown: cfg.Apertium.SuppressUnknown,
		NoSentenceGuess: cfg.Apertium.NoSentenceGuess,
	}, logger)
	return &Service{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "convert"),
		translator: engine,
		newRunID:   uuid.NewString,

		watchDebounce: DefaultWatchDebounce,
	}
}

// WithTranslator replaces the engine (for testing).
func (s *Service) WithTranslator(t Translator) {
	if t != nil {
		s.translator = t
	}
}

// Run executes the pipeline for req. Without a pair the protected (or
// selected) formatting is written and the run stops. With a pair the
// protected file is translated, deblanked, and written as the final subtitle.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	started := time.Now()
	runID := s.newRunID()
	ctx = services.WithRunID(ctx, runID)
	result := Result{RunID: runID}

	plan, err := NewPlan(req.Input, s.cfg.Conversion.WorkDir)
	if err != nil {
		return result, err
	}
	codec, err := charset.Lookup(firstNonEmpty(req.Codec, s.cfg.Conversion.Codec))
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "resolve", "codec", "", err)
	}
	formatter, err := FormatterByName(req.Format)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "resolve", "format", "", err)
	}

	var pair language.Pair
	pairToken := firstNonEmpty(req.Pair, s.cfg.Apertium.Pair)
	translating := pairToken != ""
	if translating {
		pair, err = language.ParsePair(pairToken)
		if err != nil {
			return result, services.Wrap(services.ErrValidation, "resolve", "pair", "", err)
		}
		if name := strings.ToLower(strings.TrimSpace(req.Format)); name != "" && name != FormatProtected {
			return result, services.Wrap(services.ErrValidation, "resolve", "format",
				fmt.Sprintf("format %q cannot be sent to the engine", name), nil)
		}
	}
	keep := req.KeepIntermediate || s.cfg.Conversion.KeepIntermediate

	logger := logging.WithContext(ctx, s.logger)
	summary := []any{
		logging.String("input", plan.InputPath),
		logging.String("working_dir", plan.WorkingDir),
		logging.String("base_name", plan.BaseName),
		logging.String("codec", codec.Name()),
	}
	if translating {
		summary = append(summary, logging.String("pair", pair.String()), logging.String("languages", pair.Describe()))
	}
	logger.Info("conversion plan", summary...)

	if err := os.MkdirAll(plan.WorkingDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrInvalidInput, "resolve", "create working dir", plan.WorkingDir, err)
	}
	lock := flock.New(plan.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return result, services.Wrap(services.ErrValidation, "resolve", "lock",
			"another conversion is already using "+plan.BaseName+" in "+plan.WorkingDir, nil)
	}
	// The lock file stays on disk; unlinking it would let a waiter and a
	// newcomer lock different inodes.
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release lock", logging.Error(err))
		}
	}()

	stanzas, err := s.readStanzas(ctx, codec, plan.InputPath)
	if err != nil {
		return result, err
	}
	result.Stanzas = len(stanzas)
	if len(stanzas) == 0 {
		logging.WarnWithContext(logger, "no subtitle stanzas found", services.EventType(services.ErrValidation),
			logging.String("input", plan.InputPath),
			logging.String(logging.FieldImpact, "output file will be empty"),
			logging.String(logging.FieldErrorHint, "check the input codec and that the file is a subtitle"),
		)
	}

	if !translating {
		out := req.Outfile
		if out == "" {
			out = plan.ProtectOnlyPath()
			if strings.EqualFold(strings.TrimSpace(req.Format), FormatSRT) {
				out = plan.CanonicalPath()
			}
		}
		if err := s.write(ctx, "protect", codec, out, formatter(stanzas)); err != nil {
			return result, err
		}
		result.OutputPath = out
		result.Duration = time.Since(started)
		logger.Info("conversion complete",
			logging.String("output", out),
			logging.Int("stanzas", result.Stanzas),
			logging.Duration("duration", result.Duration),
		)
		return result, nil
	}

	protected := plan.ProtectedPath(pair.Target)
	translated := plan.TranslatedPath()
	final := req.Outfile
	if final == "" {
		final = plan.TranslatedSubtitlePath(pair.Target)
	}

	if err := s.write(ctx, "protect", codec, protected, formatter(stanzas)); err != nil {
		return result, err
	}
	result.Intermediates = append(result.Intermediates, protected)

	tctx := services.WithStage(ctx, "translate")
	if err := s.translator.Translate(tctx, pair, protected, translated); err != nil {
		logging.ErrorWithContext(logging.WithContext(tctx, s.logger), "translation failed", services.EventType(err),
			logging.Error(err),
			logging.String("protected_file", protected),
			logging.String(logging.FieldErrorHint, "check that the "+pair.String()+" pair is installed; the protected file was kept for a manual retry"),
		)
		return result, err
	}
	result.Intermediates = append(result.Intermediates, translated)

	if err := s.deblank(ctx, codec, translated, final); err != nil {
		return result, err
	}
	result.OutputPath = final
	result.Translated = true

	if !keep {
		for _, path := range result.Intermediates {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				logging.WarnWithContext(logger, "failed to remove intermediate file", services.EventType(err),
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldImpact, "intermediate file left on disk"),
				)
			}
		}
		result.Intermediates = nil
	}

	result.Duration = time.Since(started)
	logger.Info("conversion complete",
		logging.String("output", final),
		logging.Int("stanzas", result.Stanzas),
		logging.Bool("kept_intermediate", keep),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

// DeblankFile removes protection markers from a translated file. An empty
// output derives a .srt path next to the input.
func (s *Service) DeblankFile(ctx context.Context, input, output, codecName string) (string, error) {
	plan, err := NewPlan(input, "")
	if err != nil {
		return "", err
	}
	codec, err := charset.Lookup(firstNonEmpty(codecName, s.cfg.Conversion.Codec))
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "resolve", "codec", "", err)
	}
	if output == "" {
		output = DeblankOutputPath(plan.InputPath)
	}
	if err := s.deblank(services.WithRunID(ctx, s.newRunID()), codec, plan.InputPath, output); err != nil {
		return "", err
	}
	return output, nil
}

// LoadStanzas parses input without writing anything.
func (s *Service) LoadStanzas(ctx context.Context, input, codecName string) ([]stanza.Stanza, error) {
	plan, err := NewPlan(input, "")
	if err != nil {
		return nil, err
	}
	codec, err := charset.Lookup(firstNonEmpty(codecName, s.cfg.Conversion.Codec))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "resolve", "codec", "", err)
	}
	return s.readStanzas(ctx, codec, plan.InputPath)
}

func (s *Service) readStanzas(ctx context.Context, codec charset.Codec, path string) ([]stanza.Stanza, error) {
	text, err := codec.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "read", codec.Name(), path, err)
	}
	stanzas := stanza.Parse(text)
	logging.WithContext(services.WithStage(ctx, "read"), s.logger).Debug("parsed subtitle",
		logging.String("path", path),
		logging.Int("stanzas", len(stanzas)),
	)
	return stanzas, nil
}

func (s *Service) deblank(ctx context.Context, codec charset.Codec, src, dst string) error {
	text, err := codec.ReadFile(src)
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, "deblank", codec.Name(), src, err)
	}
	return s.write(ctx, "deblank", codec, dst, superblank.Deblank(text))
}

func (s *Service) write(ctx context.Context, stage string, codec charset.Codec, path, text string) error {
	if err := codec.WriteFile(path, text); err != nil {
		return fmt.Errorf("%s: write %s: %w", stage, path, err)
	}
	logging.WithContext(services.WithStage(ctx, stage), s.logger).Debug("wrote file",
		logging.String("path", path),
		logging.Int("bytes", len(text)),
	)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
