// marklip: convert clipboard content between Markdown and HTML.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip/internal/clip"
	"go.klb.dev/marklip/internal/dispatch"
	"go.klb.dev/marklip/internal/report"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

// env holds the process-level collaborators so commands can be driven from
// tests with an in-memory clipboard.
type env struct {
	stdout        io.Writer
	stderr        io.Writer
	openClipboard func() (clip.Backend, error)
	notifier      report.Notifier
}

func main() {
	os.Exit(run(os.Args[1:], env{
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		openClipboard: clip.New,
		notifier:      report.Desktop{},
	}))
}

// run executes the command line and returns the process exit code.
// Conversion commands report their own failures; anything else (flag
// parsing, config) is printed here.
func run(args []string, e env) int {
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	err := root.Execute()
	if err == nil {
		return int(dispatch.ExitSuccess)
	}
	var de *dispatch.Error
	if !errors.As(err, &de) {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
	}
	return int(dispatch.CodeOf(err))
}

func newRootCmd(e env) *cobra.Command {
	a := &app{env: e, v: viper.New()}

	root := &cobra.Command{
		Use:   "marklip",
		Short: "Convert clipboard content between Markdown and HTML",
		Long: `marklip reads the clipboard, converts it and writes the result back.

  to-html  Markdown text  -> HTML (plus a plain-text flavour)
  to-md    HTML           -> Markdown text
  auto     HTML present? to-md : non-empty text? to-html : error

Exit codes: 0 success, 1 required clipboard format missing,
2 conversion failed, 255 clipboard, notification or configuration error.

Config file search order (first found wins):
  /etc/marklip/marklip.toml
  $HOME/.config/marklip/marklip.toml
  path supplied via --config

All flags can be set via MARKLIP_<FLAG> env vars (dashes become
underscores) or config-file keys.`,
		Version:           Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errors.New("a command is required")
		},
	}

	root.SetVersionTemplate("marklip {{.Version}}\n")
	addGlobalFlags(root)

	root.AddCommand(
		newConvertCmd(a, "to-html", "Convert clipboard Markdown text to HTML and write back as HTML and plain text", dispatch.ModeToHTML),
		newConvertCmd(a, "to-md", "Convert clipboard HTML to Markdown text and write back as plain text only", dispatch.ModeToMarkdown),
		newConvertCmd(a, "auto", "Auto-detect clipboard content: HTML to Markdown, non-empty text to HTML", dispatch.ModeAuto),
		newFormatsCmd(a),
		newVersionCmd(e),
	)
	return root
}

func newVersionCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(e.stdout, "marklip %s\n", Version)
		},
	}
}
