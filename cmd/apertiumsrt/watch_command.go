package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"apertiumsrt/internal/convert"
)

func newWatchCommand(ctx *commandContext, codec *string) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Convert every subtitle dropped into a directory",
		Long: `Watch a directory and convert each .srt file created or rewritten in it,
using the same pair, format and cleanup rules as a single conversion. Stop
with Ctrl-C.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the directory to watch. Example: apertiumsrt watch -p en-es ~/subs/incoming")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.converter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tmpl := convert.Request{
				Pair:             opts.pair,
				Codec:            *codec,
				Format:           opts.format,
				KeepIntermediate: opts.keepIntermediate,
			}
			fmt.Fprintf(out, "Watching %s\n", strings.TrimSpace(args[0]))
			return svc.Watch(cmd.Context(), args[0], tmpl, func(input string, result convert.Result, err error) {
				if err != nil {
					fmt.Fprintf(out, "Failed %s: %v\n", input, err)
					return
				}
				fmt.Fprintf(out, "Converted %s -> %s (%d stanzas)\n", input, result.OutputPath, result.Stanzas)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.pair, "pair", "p", "", "Apertium language pair src-dst (e.g. en-es)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format without a pair: "+strings.Join(convert.FormatNames(), ", "))
	cmd.Flags().BoolVar(&opts.keepIntermediate, "keep-intermediate", false, "Keep the .apy files after translating")
	return cmd
}
