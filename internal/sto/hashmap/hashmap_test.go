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

package hashmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertGetBasic(t *testing.T) {
	m := New[int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 2, m.Len())
}

func TestInsertOverwritesLastValue(t *testing.T) {
	m := New[string]()
	m.Insert("k", "first")
	m.Insert("k", "second")
	v, ok := m.Get("k")
	require.True(t, ok)
	require.Equal(t, "second", v)
	require.Equal(t, 1, m.Len())
}

func TestResizeCorrectness(t *testing.T) {
	m := New[int64]()
	for i := 0; i < 100; i++ {
		m.Insert(fmt.Sprintf("k%d", i), int64(i))
	}
	require.Equal(t, 100, m.Len())
	for i := 0; i < 100; i++ {
		v, ok := m.Get(fmt.Sprintf("k%d", i))
		require.Truef(t, ok, "key k%d should be present after resize", i)
		require.Equal(t, int64(i), v)
	}
}

func TestRemoveThenHas(t *testing.T) {
	m := New[int]()
	m.Insert("x", 1)
	require.True(t, m.Has("x"))
	require.True(t, m.Remove("x"))
	require.False(t, m.Has("x"))
	require.False(t, m.Remove("x"))
}

func TestFNV1aKnownVector(t *testing.T) {
	// FNV-1a 64-bit of the empty string is the offset basis itself.
	require.Equal(t, fnvOffsetBasis, hash(""))
}
