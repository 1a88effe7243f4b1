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

/*
Package config defines the configuration of a server-rendered web application
and its client bootstrap.

The configuration is split into three top-level sections:

  - runtime: settings needed while serving and while running in the browser,
    such as the base path the application is served from, template location,
    and default head metadata.
  - dev: developer-experience settings (accessibility audits, store dev tools,
    warning overlays, live reload).
  - build: settings only of interest to the build pipeline, such as where the
    built assets and their stats manifest are located.

A Config is loaded once at process start, either from defaults or using Load,
and then passed explicitly to every component needing it; there is no
package-level configuration state. Only the runtime section and, in
development builds, the dev section are ever handed out to clients, see
Config.ClientConfig.
*/
package config
