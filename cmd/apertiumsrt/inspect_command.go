package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type stanzaView struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

func newInspectCommand(ctx *commandContext, codec *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <subtitle-file>",
		Short: "Parse a subtitle and list its stanzas",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the subtitle file. Example: apertiumsrt inspect film.srt")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.converter()
			if err != nil {
				return err
			}
			stanzas, err := svc.LoadStanzas(cmd.Context(), args[0], *codec)
			if err != nil {
				return err
			}

			views := make([]stanzaView, 0, len(stanzas))
			for _, s := range stanzas {
				views = append(views, stanzaView{Index: s.Index, Start: s.Time.Start, End: s.Time.End, Text: s.Text})
			}
			if asJSON {
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No stanzas found")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					strconv.Itoa(v.Index),
					v.Start,
					v.End,
					strings.ReplaceAll(v.Text, "\n", " / "),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Start", "End", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d stanzas\n", len(views))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit stanzas as JSON")
	return cmd
}
