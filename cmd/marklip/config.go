package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip/internal/convert"
	"go.klb.dev/marklip/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and MARKLIP_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → MARKLIP_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("marklip")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/marklip/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "marklip"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("MARKLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addGlobalFlags adds the flags shared by every sub-command.
func addGlobalFlags(cmd *cobra.Command) {
	defaults := convert.DefaultOptions()

	f := cmd.PersistentFlags()
	f.BoolP("quiet", "q", false, "suppress stderr output")
	f.BoolP("notify", "n", false, "send messages as a desktop notification instead of stderr")
	f.Bool("print", false, "also write the converted output to stdout")
	f.Bool("keep-markdown", false, "to-html: keep the Markdown source as the plain-text flavour")
	f.String("highlight-style", defaults.HighlightStyle, "chroma style for fenced code blocks (empty = no highlighting)")
	f.Bool("alerts", defaults.Alerts, "render GitHub alert callouts (> [!NOTE])")
	f.Bool("hard-wraps", defaults.HardWraps, "render soft line breaks as <br>")
	f.Bool("unsafe-html", defaults.UnsafeHTML, "pass raw HTML in Markdown through to the output")
	f.String("bullet-marker", defaults.BulletMarker, "list marker used when producing Markdown: - * +")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-format", "auto", "log format: auto|text|json")
	cmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (default: warn)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog.
func (a *app) setupLogging() {
	logging.Setup(a.env.stderr,
		logging.ParseFormat(a.v.GetString("log-format")),
		logging.ParseLevel(a.v.GetString("log-level")),
	)
}

// convertOptions maps configuration onto converter options.
func (a *app) convertOptions() convert.Options {
	return convert.Options{
		HighlightStyle: a.v.GetString("highlight-style"),
		Alerts:         a.v.GetBool("alerts"),
		HardWraps:      a.v.GetBool("hard-wraps"),
		UnsafeHTML:     a.v.GetBool("unsafe-html"),
		BulletMarker:   a.v.GetString("bullet-marker"),
	}
}
