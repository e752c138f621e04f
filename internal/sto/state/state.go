// Copyright 2026 MELP Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package state implements the keyed state store: a process-global,
// lifecycle-managed key→string map with small-value-inline storage (built
// on internal/sto/sstring), entries kept most recently inserted first (built
// on internal/sto/seq), and JSON-shaped on-disk persistence (persist.go).
package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/melp-lang/melpc/internal/sto/seq"
	"github.com/melp-lang/melpc/internal/sto/sstring"
)

// Lifecycle is the state store's own state machine position, distinct from
// the entries it holds.
type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Live
	Closed
)

func (l Lifecycle) String() string {
	switch l {
	case Uninitialized:
		return "uninitialized"
	case Live:
		return "live"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// DefaultPersistFile is the persist path used when none has been configured.
const DefaultPersistFile = ".melp_state.json"

// ErrNotLive is returned by every data operation attempted while the store
// is Uninitialized or Closed.
var ErrNotLive = errors.New("state: store is not live")

// ErrUnknownConfigKey is returned by ConfigSet for unrecognized keys.
var ErrUnknownConfigKey = errors.New("state: unknown config key")

// ErrPersistence wraps failures from Save/Load (file I/O or malformed
// on-disk content).
var ErrPersistence = errors.New("state: persistence failure")

type entry struct {
	key   string
	value sstring.String
}

// Store is the keyed state store. The package exposes a process-wide
// singleton (see Init/Close/global below); Store itself has no exported
// constructor, since it is meant to be a lazily-created singleton, not an
// arbitrary value callers instantiate.
type Store struct {
	lifecycle   Lifecycle
	entries     *seq.Sequence[*entry]
	autoPersist bool
	persistFile string
}

var global = &Store{lifecycle: Uninitialized}

// Init transitions Uninitialized or Closed to Live. Calling Init while
// already Live is a no-op (a warning is printed to stderr; it is not a
// failure).
func Init() error {
	switch global.lifecycle {
	case Live:
		fmt.Fprintln(os.Stderr, "melp state: init called while already live; ignoring")
		return nil
	default:
		global.entries = seq.New[*entry]()
		global.autoPersist = false
		global.persistFile = DefaultPersistFile
		global.lifecycle = Live
		return nil
	}
}

// Close transitions Live to Closed, freeing all entries. It is a no-op
// returning ErrNotLive when not currently Live.
func Close() error {
	if global.lifecycle != Live {
		return ErrNotLive
	}
	global.entries = nil
	global.lifecycle = Closed
	return nil
}

// CurrentLifecycle reports the store's current lifecycle position.
func CurrentLifecycle() Lifecycle {
	return global.lifecycle
}

func requireLive() error {
	if global.lifecycle != Live {
		fmt.Fprintf(os.Stderr, "melp state: operation attempted while %s\n", global.lifecycle)
		return ErrNotLive
	}
	return nil
}

func findEntry(key string) (*entry, int) {
	found := -1
	var result *entry
	global.entries.Each(func(i int, e *entry) {
		if found == -1 && e.key == key {
			found = i
			result = e
		}
	})
	return result, found
}

// Set stores value under key, overwriting any existing entry, and triggers
// an auto-save when configured. Values are stored through sstring.String,
// which already applies its own small-value-inline-vs-heap representation
// choice, so Set does not duplicate that decision.
func Set(key, value string) error {
	if err := requireLive(); err != nil {
		return err
	}
	packed := sstring.FromString(value)
	if e, _ := findEntry(key); e != nil {
		e.value = packed
	} else {
		global.entries.Prepend(&entry{key: key, value: packed})
	}
	if global.autoPersist {
		return Save()
	}
	return nil
}

// Get returns a copy of the bytes stored under key, or "" if absent.
func Get(key string) (string, error) {
	if err := requireLive(); err != nil {
		return "", err
	}
	if e, _ := findEntry(key); e != nil {
		return e.value.Copy().String(), nil
	}
	return "", nil
}

// Has reports whether key is present.
func Has(key string) (bool, error) {
	if err := requireLive(); err != nil {
		return false, err
	}
	_, idx := findEntry(key)
	return idx != -1, nil
}

// Delete removes key, reporting whether it was found.
func Delete(key string) (bool, error) {
	if err := requireLive(); err != nil {
		return false, err
	}
	_, idx := findEntry(key)
	if idx == -1 {
		return false, nil
	}
	global.entries.Remove(idx)
	return true, nil
}

// Clear removes every entry and resets counters.
func Clear() error {
	if err := requireLive(); err != nil {
		return err
	}
	global.entries.Clear()
	return nil
}

// ConfigSet recognizes "auto_persist" (1/0) and "persist_file" (a path);
// unknown keys warn and fail.
func ConfigSet(key, value string) error {
	if err := requireLive(); err != nil {
		return err
	}
	switch key {
	case "auto_persist":
		global.autoPersist = value == "1"
		return nil
	case "persist_file":
		global.persistFile = value
		return nil
	default:
		fmt.Fprintf(os.Stderr, "melp state: unknown config key %q\n", key)
		return ErrUnknownConfigKey
	}
}

// Save serializes every entry to the configured persist file.
func Save() error {
	if err := requireLive(); err != nil {
		return err
	}
	return SaveTo(global.persistFile)
}

// SaveTo serializes every entry to path, independent of the configured
// persist file — used directly by tests; Save (and through it the
// auto-persist exit hook) calls it with the configured path.
func SaveTo(path string) error {
	if err := requireLive(); err != nil {
		return err
	}
	pairs := make([]kv, 0, global.entries.Len())
	global.entries.Each(func(_ int, e *entry) {
		pairs = append(pairs, kv{key: e.key, value: e.value.String()})
	})
	data := encode(pairs)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load replays the persist file's key/value pairs through Set. A missing
// file or empty content is a no-op success.
func Load() error {
	if err := requireLive(); err != nil {
		return err
	}
	return LoadFrom(global.persistFile)
}

// LoadFrom replays path's key/value pairs through Set.
func LoadFrom(path string) error {
	if err := requireLive(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(data) == 0 {
		return nil
	}
	pairs, err := decode(string(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, p := range pairs {
		if err := Set(p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

var exitHooks []func()

// InstallExitHook registers a process-exit-time save-then-close. Go has no
// destructor hook that runs unconditionally at process exit (unlike
// atexit(3)); callers must invoke RunExitHooks themselves before the
// process terminates — cmd/melpc installs the hook after Init and runs it
// explicitly at the end of its run function rather than via defer, since
// its os.Exit path would otherwise skip deferred calls. See DESIGN.md.
func InstallExitHook() {
	exitHooks = append(exitHooks, func() {
		if global.lifecycle != Live {
			return
		}
		if global.autoPersist {
			_ = Save()
		}
		_ = Close()
	})
}

// RunExitHooks executes every hook registered via InstallExitHook, in
// registration order.
func RunExitHooks() {
	for _, h := range exitHooks {
		h()
	}
}

// resetForTesting restores the package to its pre-Init state. It exists
// only to keep the state package's tests hermetic against the process-wide
// singleton and is not part of the public API surface exercised by
// cmd/melpc.
func resetForTesting() {
	global = &Store{lifecycle: Uninitialized}
	exitHooks = nil
}
