// Copyright (C) 2017 Google Inc.
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

// Package descriptors preserves CPU visible descriptors referenced by
// recorded command lists until the lists have executed.
//
// The application may modify or free a descriptor as soon as the command
// referencing it has been recorded. The Pool copies the descriptor into a
// slot owned by the command list, and the Service returns the slot once the
// execution of that list is known to be complete.
package descriptors

import (
	"context"
	"fmt"
	"sync"

	"github.com/intel/gits-sub006/core/log"
	"github.com/intel/gits-sub006/gapis/api"
	"github.com/intel/gits-sub006/gapis/config"
)

// Kind is a kind of descriptor read by command lists through a CPU handle.
type Kind int

const (
	RenderTargetView Kind = iota
	DepthStencilView
	UnorderedAccessView

	kindCount
)

// Kinds lists every Kind.
var Kinds = []Kind{RenderTargetView, DepthStencilView, UnorderedAccessView}

func (k Kind) String() string {
	switch k {
	case RenderTargetView:
		return "RTV"
	case DepthStencilView:
		return "DSV"
	case UnorderedAccessView:
		return "UAV"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Slot is a preserved descriptor.
type Slot struct {
	Kind  Kind
	Index int
}

func (s Slot) String() string { return fmt.Sprintf("%v[%d]", s.Kind, s.Index) }

type heap struct {
	kind    Kind
	content [][]byte
	free    []int // Stack of free slot indices.
}

func newHeap(kind Kind, size int) *heap {
	h := &heap{kind: kind, content: make([][]byte, size), free: make([]int, size)}
	for i := range h.free {
		h.free[i] = size - 1 - i
	}
	return h
}

// Pool holds a fixed number of slots for each Kind. It is never resized;
// when a kind runs out of slots the descriptor is not preserved.
type Pool struct {
	mutex sync.Mutex
	heaps [kindCount]*heap
	owned map[api.CommandListKey][]Slot
}

// NewPool returns a Pool with the slot counts of sizes.
func NewPool(sizes config.Descriptors) *Pool {
	p := &Pool{owned: map[api.CommandListKey][]Slot{}}
	p.heaps[RenderTargetView] = newHeap(RenderTargetView, sizes.RenderTargetViews)
	p.heaps[DepthStencilView] = newHeap(DepthStencilView, sizes.DepthStencilViews)
	p.heaps[UnorderedAccessView] = newHeap(UnorderedAccessView, sizes.UnorderedAccessViews)
	return p
}

func (p *Pool) heap(kind Kind) *heap {
	if kind < 0 || kind >= kindCount {
		panic(fmt.Errorf("Invalid descriptor kind %v", kind))
	}
	return p.heaps[kind]
}

// Preserve copies content into a free slot of kind, owned by list.
// If the pool of kind is exhausted, an error is logged and ok is false; the
// command referencing the descriptor will then read whatever the
// application left in the original descriptor.
func (p *Pool) Preserve(ctx context.Context, id api.CmdID, list api.CommandListKey, kind Kind, content []byte) (slot Slot, ok bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	h := p.heap(kind)
	if len(h.free) == 0 {
		poolExhausted.WithLabelValues(kind.String()).Inc()
		ctx = log.V{"cmd": id, "list": list}.Bind(ctx)
		log.E(ctx, "%v descriptor pool exhausted (%d slots). Descriptor not preserved", kind, len(h.content))
		return Slot{}, false
	}
	idx := h.free[len(h.free)-1]
	h.free = h.free[:len(h.free)-1]
	h.content[idx] = append([]byte(nil), content...)
	slot = Slot{Kind: kind, Index: idx}
	p.owned[list] = append(p.owned[list], slot)
	slotsInUse.WithLabelValues(kind.String()).Inc()
	if config.LogDescriptorPoolEvents {
		log.D(ctx, "Preserved %v for %v at %v", slot, list, id)
	}
	return slot, true
}

// Content returns the preserved content of slot.
func (p *Pool) Content(slot Slot) []byte {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.heap(slot.Kind).content[slot.Index]
}

// Take removes and returns the slots currently owned by list. The caller
// becomes responsible for releasing them.
func (p *Pool) Take(list api.CommandListKey) []Slot {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	slots := p.owned[list]
	delete(p.owned, list)
	return slots
}

// Release returns slots to the free set.
func (p *Pool) Release(ctx context.Context, slots []Slot) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	for _, s := range slots {
		h := p.heap(s.Kind)
		h.content[s.Index] = nil
		h.free = append(h.free, s.Index)
		slotsInUse.WithLabelValues(s.Kind.String()).Dec()
	}
	if config.LogDescriptorPoolEvents && len(slots) > 0 {
		log.D(ctx, "Released %v", slots)
	}
}

// Free returns the number of free slots of kind.
func (p *Pool) Free(kind Kind) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.heap(kind).free)
}

// Capacity returns the total number of slots of kind.
func (p *Pool) Capacity(kind Kind) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.heap(kind).content)
}
