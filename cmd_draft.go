package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"investor_outreach/export"
	"investor_outreach/outreach"
)

var (
	inputPath  string
	outputPath string
	formatName string
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft one email through the configured runtime",
	Example: `  outreach draft --input request.yaml
  outreach draft --input request.json --format eml --out investor_email.eml`,
	RunE: runDraft,
}

func init() {
	for _, c := range []*cobra.Command{draftCmd, composeCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "-", "request file (yaml or json); - reads stdin")
		c.Flags().StringVarP(&outputPath, "out", "o", "", "write the email here instead of stdout")
		c.Flags().StringVarP(&formatName, "format", "f", "txt", "output format: txt, md, html, eml")
	}
}

func runDraft(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}
	orch, err := buildOrchestrator()
	if err != nil {
		return err
	}
	d, err := orch.DraftEmail(cmd.Context(), req)
	if err != nil {
		return err
	}
	if d.Debug != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), d.Debug)
	}
	return writeEmail(cmd, d.Text, d.Issues())
}

// readRequest decodes a request file; yaml.v3 accepts JSON documents too.
func readRequest(stdin io.Reader, path string) (outreach.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return outreach.Request{}, fmt.Errorf("read request: %w", err)
	}
	var req outreach.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return outreach.Request{}, fmt.Errorf("parse request: %w", err)
	}
	return req, nil
}

// writeEmail renders text in the chosen format and lists review notes on stderr.
func writeEmail(cmd *cobra.Command, text string, issues []string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	out, err := export.Render(format, text)
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(out.Data)
		if err == nil && format == export.FormatText {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	} else {
		err = os.WriteFile(outputPath, out.Data, 0o644)
	}
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Fprintln(cmd.ErrOrStderr(), "review:", issue)
	}
	return nil
}
