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

// Package console implements the fixed, observable formatting rules for
// user-visible print calls over the surface scalar types.
package console

import (
	"github.com/melp-lang/melpc/internal/sto/numeric"
	"github.com/melp-lang/melpc/internal/sto/sstring"
)

// FormatBool renders a boolean as the literal text "true" or "false".
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatNumeric renders v using numeric.Value's own String, which already
// implements the I64/F64/BIG formatting split this function documents:
// decimal with no leading zeros for I64, %g-equivalent for F64, the
// canonical signed digit string for BIG.
func FormatNumeric(v numeric.Value) string {
	return v.String()
}

// FormatString renders an SSO string for console output verbatim.
func FormatString(s sstring.String) string {
	return s.String()
}
