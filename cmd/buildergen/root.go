package main

import (
	"io"
	"os"

	"github.com/go-courier/logr"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/octohelm/buildergen/pkg/config"
	"github.com/octohelm/buildergen/pkg/logger"
)

type app struct {
	configFile string
	logLevel   string
	logFile    string

	config *config.Config
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "buildergen",
		Short: "Generate builder call chains for go source",
		Long: `buildergen completes the call returning a builder type with one setter call
per field of the builder, then the terminal build call.

A type is a builder when its name ends with one of the configured suffixes
(Builder by default) or its doc comment carries +buildergen.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file in yaml, never written")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs into rotated file instead of stderr")

	cmd.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newFieldsCmd(a),
		newFmtCmd(),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	lvl, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.ErrOrStderr()

	if a.logFile != "" {
		f := &lumberjack.Logger{
			Filename:   a.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w = f
		a.closer = f
	}

	c, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.config = c

	cmd.SetContext(logger.WithLogger(cmd.Context(), logger.New(w, lvl)))

	logr.FromContext(cmd.Context()).Debug("config %s loaded", a.configFile)

	return nil
}

func readFile(filename string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, err
	}
	return data, info.Mode(), nil
}
