package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeblankCommand(ctx *commandContext, codec *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "deblank <translated-file>",
		Short: "Strip protection markers from a translated file",
		Long: `Strip the [ and ] protection markers from a file produced by running
apertium over a protected subtitle, restoring SubRip layout.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the translated file. Example: apertiumsrt deblank film_lang2_srt.apy")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.converter()
			if err != nil {
				return err
			}
			path, err := svc.DeblankFile(cmd.Context(), args[0], output, *codec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: input with .srt extension)")
	return cmd
}
