package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is a report output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// SupportedFormats lists the accepted format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatText)}
}

// ParseFormat maps a name to a Format. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, s, strings.Join(SupportedFormats(), ", "))
	}
}

// Write serializes r to w in the given format.
func Write(w io.Writer, format Format, r *Report) error {
	if r == nil {
		return ErrNilReport
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatText:
		return writeText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to serialize report to JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to serialize report to YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to serialize report to YAML: %w", err)
	}
	return nil
}

func writeText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHECK\tCONSTRAINT\tSTATUS\tPATH\tMESSAGE")
	for _, res := range r.Results {
		switch {
		case res.Error != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", res.Name, res.Constraint, res.Status, dash(res.Path), res.Error)
		case len(res.Violations) == 0:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t-\n", res.Name, res.Constraint, res.Status, dash(res.Path))
		default:
			for _, e := range res.Violations {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", res.Name, res.Constraint, res.Status, dash(e.Path), e.Message)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report table: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%s: %d checks, %d passed, %d failed, %d errored\n",
		r.Summary.Status, r.Summary.Checks, r.Summary.Passed, r.Summary.Failed, r.Summary.Errored)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
