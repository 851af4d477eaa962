package main

import (
	"strings"

	"github.com/spf13/cobra"

	"apertiumsrt/internal/convert"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool
	var codec string
	var opts convertOptions

	ctx := newCommandContext(&configFlag, &verbose)

	rootCmd := &cobra.Command{
		Use:   "apertiumsrt [flags] <subtitle-file>",
		Short: "Translate SubRip subtitles with Apertium",
		Long: `Translate SubRip subtitles with Apertium.

Without a language pair the subtitle is rewritten with each counter and time
range wrapped in protected blocks, ready for a manual apertium run. With
--pair the engine is invoked and the translated .srt is written directly.`,
		Example: `  apertiumsrt film.srt
  apertiumsrt -p en-es film.srt
  apertiumsrt -c latin-1 -p es-ca -o film.ca.srt film.srt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts.codec = codec
			return runConvert(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&codec, "codec", "c", "", "Subtitle file encoding (default from config, UTF-8)")

	rootCmd.Flags().StringVarP(&opts.pair, "pair", "p", "", "Apertium language pair src-dst (e.g. en-es)")
	rootCmd.Flags().StringVarP(&opts.outfile, "outfile", "o", "", "Output file path")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format without a pair: "+strings.Join(convert.FormatNames(), ", "))
	rootCmd.Flags().BoolVar(&opts.keepIntermediate, "keep-intermediate", false, "Keep the .apy files after translating")

	rootCmd.AddCommand(newDeblankCommand(ctx, &codec))
	rootCmd.AddCommand(newInspectCommand(ctx, &codec))
	rootCmd.AddCommand(newWatchCommand(ctx, &codec))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
