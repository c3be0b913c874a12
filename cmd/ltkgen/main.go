// ltkgen generates Go declarations from an LLRP binary encoding definition.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ltkgen/internal/config"
	"ltkgen/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flags, LTKGEN_* environment variables
// and the config file are resolved through a viper instance owned by the
// tree, with flags taking precedence over the environment and both over the
// file.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LTKGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "ltkgen",
		Short: "Generate Go declarations from LLRP definitions",
		Long: `ltkgen reads an LLRP binary encoding definition (llrpdef XML) and writes
one Go source file per parameter, message, enumeration and choice.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML/JSON)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", logging.FormatConsole, "log format (console, json)")
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log-format", flags.Lookup("log-format"))

	root.AddCommand(
		newGenerateCmd(v),
		newInspectCmd(v),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ltkgen version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ltkgen %s\n", version)
			return err
		},
	}
}

func newLogger(v *viper.Viper, out io.Writer) zerolog.Logger {
	return logging.New(logging.Options{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
		Out:    out,
	})
}

// loadConfig builds the configuration from defaults, the optional config
// file and any option set by flag or environment.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.New()
	if path := v.GetString("config"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	o := &cfg.Options
	setString(v, "package", &o.Package)
	setString(v, "output", &o.OutputDir)
	setString(v, "tag-key", &o.TagKey)
	setString(v, "template", &o.Template)
	setBool(v, "enum-tests", &o.EnumTests)
	setBool(v, "resolve-choices", &o.ResolveChoices)
	setBool(v, "response-index", &o.ResponseIndex)
	setBool(v, "manifest", &o.Manifest)
	if v.IsSet("workers") {
		o.Workers = v.GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func setBool(v *viper.Viper, key string, dst *bool) {
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}
