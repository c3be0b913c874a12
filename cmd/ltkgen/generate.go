package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ltkgen/internal/config"
	"ltkgen/internal/generator"
	"ltkgen/internal/parser"
	"ltkgen/internal/report"
	"ltkgen/internal/watch"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <llrp-def.xml>",
		Short: "Write Go declarations for every entity in a definition",
		Example: `  ltkgen generate llrp-1x0-def.xml -o ./ltkgo
  ltkgen generate llrp-1x0-def.xml -c ltkgen.yaml --resolve-choices
  ltkgen generate llrp-1x0-def.xml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "output directory (default from config, then \".\")")
	flags.StringP("package", "p", "", "package name of the generated files")
	flags.String("tag-key", "", "struct tag key")
	flags.StringP("template", "t", "", "template file overriding built-in definitions")
	flags.IntP("workers", "w", 0, "files rendered and written in parallel")
	flags.Bool("enum-tests", false, "write a test placeholder for enumerations")
	flags.Bool("resolve-choices", false, "emit a closed interface per choice definition")
	flags.Bool("response-index", true, "write "+generator.ResponsesFile)
	flags.Bool("manifest", false, "write "+generator.ManifestFile)
	flags.Bool("dry-run", false, "translate and render without writing files")
	flags.Bool("watch", false, "regenerate when the inputs change")
	for _, name := range []string{
		"output", "package", "tag-key", "template", "workers",
		"enum-tests", "resolve-choices", "response-index", "manifest",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	return cmd
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, schemaPath string) error {
	log := newLogger(v, cmd.ErrOrStderr())

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	once := func() error {
		return generateOnce(cmd, cfg, log, schemaPath, dryRun)
	}
	// A watched run rereads the config so edits to it take effect.
	reload := func() error {
		fresh, err := loadConfig(v)
		if err != nil {
			return err
		}
		return generateOnce(cmd, fresh, log, schemaPath, dryRun)
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return once()
	}

	if err := once(); err != nil {
		log.Error().Err(err).Msg("generation failed")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	paths := []string{schemaPath, v.GetString("config"), cfg.Options.Template}
	return watch.New(paths, watch.DefaultDelay, log).Run(ctx, reload)
}

func generateOnce(cmd *cobra.Command, cfg *config.Config, log zerolog.Logger, schemaPath string, dryRun bool) error {
	gen := generator.New(cfg, log)
	if cfg.Options.Template != "" {
		if err := gen.LoadTemplate(cfg.Options.Template); err != nil {
			return err
		}
	}

	schema, err := parser.New().ParseFile(schemaPath)
	if err != nil {
		return err
	}

	var sink generator.Sink = generator.NewDirSink(cfg.Options.OutputDir)
	if dryRun {
		sink = generator.Discard
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := gen.Generate(ctx, schema, sink)
	if err != nil {
		return fmt.Errorf("generating %s: %w", schemaPath, err)
	}

	if dryRun {
		return report.Entities(cmd.OutOrStdout(), res)
	}
	return nil
}
