package apertium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"apertiumsrt/internal/language"
	"apertiumsrt/internal/logging"
	"apertiumsrt/internal/services"
)

// CommandRunner executes an external command to completion.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service runs the translation engine.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner CommandRunner
}

// NewService creates an engine service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if strings.TrimSpace(cfg.Command) == "" {
		cfg.Command = DefaultCommand
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "apertium"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// Command returns the configured engine binary.
func (s *Service) Command() string {
	return s.cfg.Command
}

// BuildArgs returns the engine arguments for one translation.
func (s *Service) BuildArgs(pair language.Pair, src, dst string) []string {
	args := make([]string, 0, 4)
	var flags strings.Builder
	if s.cfg.SuppressUnknown {
		flags.WriteByte('u')
	}
	if s.cfg.NoSentenceGuess {
		flags.WriteByte('n')
	}
	if flags.Len() > 0 {
		args = append(args, "-"+flags.String())
	}
	return append(args, pair.String(), src, dst)
}

// Translate runs the engine from src to dst and blocks until it exits.
func (s *Service) Translate(ctx context.Context, pair language.Pair, src, dst string) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return services.Wrap(services.ErrExternalTool, "translate", "prepare", "source and destination paths are required", nil)
	}
	args := s.BuildArgs(pair, src, dst)
	logging.WithContext(ctx, s.logger).Info("translate command",
		logging.String("command", s.cfg.Command+" "+strings.Join(args, " ")),
		logging.String("pair", pair.Describe()),
	)

	if err := s.run(ctx, s.cfg.Command, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "translate", s.cfg.Command, "engine run failed", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrExternalTool, "translate", s.cfg.Command, "engine wrote no output file "+dst, nil)
		}
		return services.Wrap(services.ErrExternalTool, "translate", "stat output", dst, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrExternalTool, "translate", "stat output", dst+" is a directory", nil)
	}
	return nil
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("binary %q not found: %w", name, err)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
