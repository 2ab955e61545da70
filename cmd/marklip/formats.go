package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.klb.dev/marklip/internal/clip"
	"go.klb.dev/marklip/internal/dispatch"
)

type formatInfo struct {
	Format    clip.Format `json:"format"`
	Present   bool        `json:"present"`
	SizeBytes int         `json:"size_bytes"`
}

type formatsReport struct {
	Backend string       `json:"backend"`
	Formats []formatInfo `json:"formats"`
}

func newFormatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Show which clipboard formats are present",
		Long: `Inspects the clipboard without modifying it and lists the formats
marklip can convert from, with their sizes.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error { return a.runFormats() },
	}
	cmd.Flags().Bool("json", false, "output raw JSON")
	return cmd
}

func (a *app) runFormats() error {
	backend, err := a.openClipboard()
	if err != nil {
		a.reporter().Failure(dispatch.MessageOf(err))
		return err
	}
	defer backend.Close()

	rep := formatsReport{Backend: backend.Name()}
	for _, f := range []clip.Format{clip.FormatText, clip.FormatHTML} {
		info := formatInfo{Format: f, Present: backend.Has(f)}
		if info.Present {
			data, err := backend.Read(f)
			if err != nil {
				err = dispatch.Environment("clipboard read failed", err)
				a.reporter().Failure(dispatch.MessageOf(err))
				return err
			}
			info.SizeBytes = len(data)
		}
		rep.Formats = append(rep.Formats, info)
	}

	if a.v.GetBool("json") {
		enc := json.NewEncoder(a.env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printFormats(a, rep)
	return nil
}

func printFormats(a *app, rep formatsReport) {
	w := tabwriter.NewWriter(a.env.stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Backend:\t%s\n", rep.Backend)
	fmt.Fprintln(w)
	_ = w.Flush()

	tw := tabwriter.NewWriter(a.env.stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "FORMAT\tPRESENT\tSIZE\n")
	_, _ = fmt.Fprintf(tw, "------\t-------\t----\n")
	for _, f := range rep.Formats {
		size := "-"
		if f.Present {
			size = fmt.Sprintf("%d B", f.SizeBytes)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Format, yesNo(f.Present), size)
	}
	_ = tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
