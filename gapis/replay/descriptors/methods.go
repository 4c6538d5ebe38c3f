// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package descriptors

import "strings"

var methodKinds = map[string]Kind{
	"OMSetRenderTargets":            RenderTargetView,
	"ClearRenderTargetView":         RenderTargetView,
	"ClearDepthStencilView":         DepthStencilView,
	"ClearUnorderedAccessViewUint":  UnorderedAccessView,
	"ClearUnorderedAccessViewFloat": UnorderedAccessView,
}

// KindOf returns the kind of CPU descriptor handle consumed by the command
// list method name. name may be qualified with its interface, as in
// "ID3D12GraphicsCommandList::ClearRenderTargetView".
func KindOf(name string) (Kind, bool) {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	k, ok := methodKinds[name]
	return k, ok
}
