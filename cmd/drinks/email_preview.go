package main

import (
	"fmt"
	"strings"

	"github.com/deppfellow/drinks/internal/lib/email"
	"github.com/spf13/cobra"
)

var emailPreviewCmd = &cobra.Command{
	Use:   "email-preview [template]",
	Short: "Render an email template with sample data",
	Long:  "Renders an email template with sample data and prints the HTML. Without arguments it lists the templates.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(email.PreviewTemplates(), "\n"))
			return err
		}

		html, err := email.Preview(email.Template(args[0]))
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	},
}
