package main

import (
	"fmt"
	"strings"

	"faqbot/internal/render"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var format string
	var showSource bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := a.chat.ValidateInput(strings.Join(args, " "))
			if err != nil {
				return err
			}

			resp := a.responses.Respond(cmd.Context(), text)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.ByName(format).Render(resp.Text))
			if len(resp.Suggestions) > 0 {
				fmt.Fprintln(out, "\nYou might also ask:")
				for _, s := range resp.Suggestions {
					fmt.Fprintln(out, "  - "+s)
				}
			}
			if showSource {
				fmt.Fprintf(out, "\n(source: %s)\n", resp.Source)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatTerminal, "output format: terminal, markdown or html")
	cmd.Flags().BoolVar(&showSource, "source", false, "print where the answer came from")
	return cmd
}
