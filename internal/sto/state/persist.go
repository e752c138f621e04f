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

package state

import (
	"fmt"
	"strings"
)

// kv is an ordered key/value pair as persisted to disk.
type kv struct {
	key   string
	value string
}

// encode renders pairs as a single-line JSON-shaped object whose members
// are string-to-string, escaping only '"' and '\\' — a narrower escape set
// than full JSON string escaping.
func encode(pairs []kv) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(escape(p.key))
		b.WriteString("\": \"")
		b.WriteString(escape(p.value))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// decode parses a JSON-shaped string-to-string object, recognizing only the
// \" and \\ escapes. It imposes no length limit on keys or values (Go
// strings grow dynamically) and reports malformed input as an error
// instead of silently truncating it.
func decode(s string) ([]kv, error) {
	sc := &scanner{src: s}
	sc.skipSpace()
	if !sc.consume('{') {
		return nil, fmt.Errorf("persist file: expected '{' at offset %d", sc.pos)
	}
	sc.skipSpace()
	var pairs []kv
	if sc.consume('}') {
		return pairs, nil
	}
	for {
		sc.skipSpace()
		key, err := sc.readString()
		if err != nil {
			return nil, err
		}
		sc.skipSpace()
		if !sc.consume(':') {
			return nil, fmt.Errorf("persist file: expected ':' after key %q at offset %d", key, sc.pos)
		}
		sc.skipSpace()
		value, err := sc.readString()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, kv{key: key, value: value})
		sc.skipSpace()
		if sc.consume(',') {
			continue
		}
		if sc.consume('}') {
			break
		}
		return nil, fmt.Errorf("persist file: expected ',' or '}' at offset %d", sc.pos)
	}
	return pairs, nil
}

type scanner struct {
	src string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case ' ', '\t', '\r', '\n':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *scanner) consume(b byte) bool {
	if sc.pos < len(sc.src) && sc.src[sc.pos] == b {
		sc.pos++
		return true
	}
	return false
}

// readString parses a double-quoted string recognizing only \" and \\
// escapes; any other character, including an unescaped backslash, passes
// through literally.
func (sc *scanner) readString() (string, error) {
	if !sc.consume('"') {
		return "", fmt.Errorf("persist file: expected '\"' at offset %d", sc.pos)
	}
	var b strings.Builder
	for {
		if sc.pos >= len(sc.src) {
			return "", fmt.Errorf("persist file: unterminated string starting before offset %d", sc.pos)
		}
		c := sc.src[sc.pos]
		if c == '"' {
			sc.pos++
			return b.String(), nil
		}
		if c == '\\' && sc.pos+1 < len(sc.src) && (sc.src[sc.pos+1] == '"' || sc.src[sc.pos+1] == '\\') {
			b.WriteByte(sc.src[sc.pos+1])
			sc.pos += 2
			continue
		}
		b.WriteByte(c)
		sc.pos++
	}
}
