package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apertiumsrt/internal/convert"
)

type convertOptions struct {
	pair             string
	codec            string
	outfile          string
	format           string
	keepIntermediate bool
}

func runConvert(cmd *cobra.Command, ctx *commandContext, input string, opts convertOptions) error {
	svc, err := ctx.converter()
	if err != nil {
		return err
	}
	result, err := svc.Run(cmd.Context(), convert.Request{
		Input:            input,
		Pair:             opts.pair,
		Codec:            opts.codec,
		Outfile:          opts.outfile,
		Format:           opts.format,
		KeepIntermediate: opts.keepIntermediate,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Translated:
		fmt.Fprintf(out, "Translated subtitle: %s (%d stanzas)\n", result.OutputPath, result.Stanzas)
		for _, path := range result.Intermediates {
			fmt.Fprintf(out, "Kept intermediate: %s\n", path)
		}
	default:
		fmt.Fprintf(out, "Wrote %s (%d stanzas)\n", result.OutputPath, result.Stanzas)
	}
	return nil
}
