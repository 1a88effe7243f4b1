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
	"github.com/fsnotify/fsnotify"
)

// OnReload registers a hook called after the page templates have been
// re-parsed due to changes.
func (r *Renderer) OnReload(hook func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// OnReloadError registers a hook called when changed page templates cannot
// be parsed; the previous templates stay in use.
func (r *Renderer) OnReloadError(hook func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errHooks = append(r.errHooks, hook)
}

// Close stops watching the page templates, if watched at all.
func (r *Renderer) Close() error {
	r.mu.Lock()
	watcher := r.watcher
	r.watcher = nil
	r.mu.Unlock()
	if watcher == nil {
		return nil
	}
	return watcher.Close()
}

// watch starts watching the template directory.
func (r *Renderer) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		_ = watcher.Close()
		return err
	}
	r.watcher = watcher
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				r.reload(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Error().Err(err).Msg("watching page templates failed")
			}
		}
	}()
	r.logger.Debug().Str("dir", r.dir).Msg("watching page templates")
	return nil
}

// reload re-parses the templates, keeping the current ones if parsing fails.
func (r *Renderer) reload(name string) {
	tmpl, err := r.parse()
	if err != nil {
		r.logger.Error().Err(err).Str("file", name).Msg("cannot reload page templates")
		r.mu.RLock()
		errHooks := append([]func(error){}, r.errHooks...)
		r.mu.RUnlock()
		for _, hook := range errHooks {
			hook(err)
		}
		return
	}
	r.mu.Lock()
	r.tmpl = tmpl
	hooks := append([]func(){}, r.hooks...)
	r.mu.Unlock()
	r.logger.Info().Str("file", name).Msg("reloaded page templates")
	for _, hook := range hooks {
		hook()
	}
}
