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
Package fetch prefetches the data of matched route components before they get
rendered.

Route components declare their data dependencies by implementing Fetcher.
Prefetch runs the fetchers of all matched components and only returns after
all of them have settled: in parallel (fan-out, then join) or one after
another. Any failing fetcher fails the prefetch as a whole, including
fetchers that panic and fetches outliving their context.
*/
package fetch
