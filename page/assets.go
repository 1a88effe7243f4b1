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

package page

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Assets names the script bundles and style sheets produced by the build
// pipeline, in order of importance.
type Assets struct {
	Script []string `json:"script"`
	CSS    []string `json:"css"`
}

// LoadAssets reads the asset names from the JSON stats manifest written by
// the build pipeline.
func LoadAssets(fsys fs.FS, name string) (Assets, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Assets{}, fmt.Errorf("cannot read asset manifest: %w", err)
	}
	var assets Assets
	if err := json.Unmarshal(raw, &assets); err != nil {
		return Assets{}, fmt.Errorf("cannot decode asset manifest %q: %w", name, err)
	}
	return assets, nil
}
