package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ltkgen/internal/generator"
	"ltkgen/internal/parser"
	"ltkgen/internal/report"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <llrp-def.xml>",
		Short: "Show what a definition would generate, without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(v, cmd.ErrOrStderr())
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			schema, err := parser.New().ParseFile(args[0])
			if err != nil {
				return err
			}
			res, err := generator.New(cfg, log).Translate(schema)
			if err != nil {
				return fmt.Errorf("translating %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if err := report.Summary(out, res); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := report.Entities(out, res); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := report.Types(out, cfg, schema); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return report.Diagnostics(out, res)
		},
	}
}
