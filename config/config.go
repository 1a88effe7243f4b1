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

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Runtime Runtime `mapstructure:"runtime" json:"runtime" yaml:"runtime" toml:"runtime"`
	Dev     Dev     `mapstructure:"dev" json:"dev" yaml:"dev" toml:"dev"`
	Build   Build   `mapstructure:"build" json:"build" yaml:"build" toml:"build"`
}

// Runtime configures serving and the client in the browser.
type Runtime struct {
	// Path is the base path the application is served from, such as "/" or
	// "/app".
	Path string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
	// Port the CLI server listens on.
	Port int `mapstructure:"port" json:"port" yaml:"port" toml:"port"`
	// SSR enables server-side rendering; when disabled the client fetches
	// the data of the initial route itself.
	SSR bool `mapstructure:"ssr" json:"ssr" yaml:"ssr" toml:"ssr"`
	// MountNode is the id of the DOM element the client mounts into.
	MountNode string   `mapstructure:"mountNode" json:"mountNode" yaml:"mountNode" toml:"mountNode"`
	Debug     Debug    `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	Fetch     Fetch    `mapstructure:"fetch" json:"fetch" yaml:"fetch" toml:"fetch"`
	Template  Template `mapstructure:"template" json:"template" yaml:"template" toml:"template"`
	Head      Head     `mapstructure:"head" json:"head" yaml:"head" toml:"head"`
}

// Debug holds log levels for server and client.
type Debug struct {
	Server string `mapstructure:"server" json:"server" yaml:"server" toml:"server"`
	Client string `mapstructure:"client" json:"client" yaml:"client" toml:"client"`
}

// Fetch configures data prefetching.
type Fetch struct {
	Server FetchServer `mapstructure:"server" json:"server" yaml:"server" toml:"server"`
	Client FetchClient `mapstructure:"client" json:"client" yaml:"client" toml:"client"`
}

// FetchServer configures server-side prefetching.
type FetchServer struct {
	// Timeout bounds the prefetch join of a single request; zero means no
	// deadline other than the request's own.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"`
}

// FetchClient configures client-side prefetching.
type FetchClient struct {
	Parallel bool `mapstructure:"parallel" json:"parallel" yaml:"parallel" toml:"parallel"`
}

// Template locates the page template.
type Template struct {
	// Path is the directory containing the page templates; if empty, the
	// built-in templates are used.
	Path string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
	Name string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
}

// Head defines the default head metadata of every page.
type Head struct {
	Title string              `mapstructure:"title" json:"title" yaml:"title" toml:"title"`
	Meta  []map[string]string `mapstructure:"meta" json:"meta" yaml:"meta" toml:"meta"`
	Link  []map[string]string `mapstructure:"link" json:"link" yaml:"link" toml:"link"`
}

// Dev configures developer tooling.
type Dev struct {
	A11y      bool      `mapstructure:"a11y" json:"a11y" yaml:"a11y" toml:"a11y"`
	Redux     Redux     `mapstructure:"redux" json:"redux" yaml:"redux" toml:"redux"`
	YellowBox YellowBox `mapstructure:"yellowbox" json:"yellowbox" yaml:"yellowbox" toml:"yellowbox"`
	Reload    Reload    `mapstructure:"reload" json:"reload" yaml:"reload" toml:"reload"`
}

// Redux configures the store dev tools panel.
type Redux struct {
	DevTools DevTools `mapstructure:"devTools" json:"devTools" yaml:"devTools" toml:"devTools"`
}

// DevTools toggles the store dev tools panel.
type DevTools struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
}

// YellowBox configures the warning overlay.
type YellowBox struct {
	Enabled bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled" toml:"enabled"`
	Ignore  []string `mapstructure:"ignore" json:"ignore" yaml:"ignore" toml:"ignore"`
}

// Reload configures the live-reload endpoint.
type Reload struct {
	Path string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
}

// Build configures where the build pipeline put its output.
type Build struct {
	// Output is the directory containing the built client assets.
	Output string `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
	// Stats is the name of the asset manifest inside Output.
	Stats string `mapstructure:"stats" json:"stats" yaml:"stats" toml:"stats"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Runtime: Runtime{
			Path:      "/",
			Port:      3000,
			SSR:       true,
			MountNode: "application",
			Debug: Debug{
				Server: "info",
				Client: "warn",
			},
			Fetch: Fetch{
				Client: FetchClient{Parallel: true},
			},
			Template: Template{
				Name: "main.html",
			},
			Head: Head{
				Title: "Web Application",
				Meta: []map[string]string{
					{"name": "viewport", "content": "width=device-width, initial-scale=1"},
				},
			},
		},
		Dev: Dev{
			A11y: false,
			Redux: Redux{
				DevTools: DevTools{Enabled: true},
			},
			YellowBox: YellowBox{Enabled: true},
			Reload:    Reload{Path: "/_dev/reload"},
		},
		Build: Build{
			Output: "build/client",
			Stats:  "stats.json",
		},
	}
}

// Basename returns the effective base path for routing and history: the
// empty string when the application is served from the root path "/" (to
// avoid double slashes when joining), and the configured path otherwise.
func (r Runtime) Basename() string {
	if r.Path == "/" {
		return ""
	}
	return r.Path
}

// ClientConfig returns the subset of the configuration that is serialized
// into pages for use by the client. The build section is never included;
// the dev section is only included in development builds (dist false).
func (c *Config) ClientConfig(dist bool) map[string]any {
	client := map[string]any{
		"runtime": c.Runtime,
	}
	if !dist {
		client["dev"] = c.Dev
	}
	return client
}

// ErrInvalidConfig is wrapped by all validation errors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for settings that would make serving
// impossible.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Runtime.Path, "/") {
		return fmt.Errorf("%w: runtime.path %q must start with \"/\"", ErrInvalidConfig, c.Runtime.Path)
	}
	if len(c.Runtime.Path) > 1 && strings.HasSuffix(c.Runtime.Path, "/") {
		return fmt.Errorf("%w: runtime.path %q must not end with \"/\"", ErrInvalidConfig, c.Runtime.Path)
	}
	if c.Runtime.MountNode == "" {
		return fmt.Errorf("%w: runtime.mountNode must not be empty", ErrInvalidConfig)
	}
	if c.Runtime.Template.Name == "" {
		return fmt.Errorf("%w: runtime.template.name must not be empty", ErrInvalidConfig)
	}
	if c.Runtime.Fetch.Server.Timeout < 0 {
		return fmt.Errorf("%w: runtime.fetch.server.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
