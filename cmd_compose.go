package main

import (
	"github.com/spf13/cobra"

	"investor_outreach/outreach"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose one email from the template only, without a model",
	RunE:  runCompose,
}

func runCompose(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}
	email, review, err := outreach.ComposeRequest(cmd.Context(), req, cfg.Product)
	if err != nil {
		return err
	}
	return writeEmail(cmd, email.Body, review.All())
}
