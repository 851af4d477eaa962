package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apertiumsrt/internal/deps"
	"apertiumsrt/internal/language"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the translation engine is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			req := deps.ApertiumRequirement(cfg.Apertium.Command)
			// A configured default pair means every plain run needs the engine.
			req.Optional = strings.TrimSpace(cfg.Apertium.Pair) == ""
			statuses := deps.CheckBinaries([]deps.Requirement{req})

			if asJSON {
				if err := writeJSON(cmd, statuses); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(statuses))
				for _, s := range statuses {
					detail := s.Path
					if !s.Available {
						detail = s.Detail
					}
					rows = append(rows, []string{s.Name, s.Command, yesNo(s.Available), yesNo(!s.Optional), detail})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Dependency", "Command", "Available", "Required", "Detail"},
					rows, nil,
				))
				if pair, err := language.ParsePair(cfg.Apertium.Pair); err == nil {
					fmt.Fprintf(out, "Default pair: %s (%s)\n", pair, pair.Describe())
				} else {
					fmt.Fprintln(out, "Default pair: none (protect-only runs)")
				}
			}

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("%s is not available: %s", missing[0].Name, missing[0].Detail)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON")
	return cmd
}
