// Copyright 2026 The roc-package-web-app-react Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/olekenneth/roc-package-web-app-react/config"
)

var (
	cfg        *config.Config
	logger     zerolog.Logger
	logOutput  io.Writer
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "webapp-react",
	Short: "Server-rendered web application server",
	Long: `webapp-react renders web applications on the server, serves their
built assets, and hands the rendered pages together with their state over to
the browser for mounting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch logFormat {
		case "json":
			logOutput = os.Stdout
		default:
			logOutput = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		}
		logger = zerolog.New(logOutput).With().Timestamp().Logger()

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		level, err := serverLogLevel(logLevel, cfg)
		if err != nil {
			return err
		}
		logger = logger.Level(level)
		return nil
	},
}

// serverLogLevel returns the log level set on the command line, falling back
// to the configured server debug level, and finally to info.
func serverLogLevel(flag string, cfg *config.Config) (zerolog.Level, error) {
	name := flag
	if name == "" {
		name = cfg.Runtime.Debug.Server
	}
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "Configuration file (YAML, TOML, or JSON)")
	f.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to runtime.debug.server")
	f.StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
}
