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

// Package overflow implements exact pre-checks for signed 64-bit integer
// arithmetic, the probes the code generator wraps around every arithmetic
// operation over surface numeric values before committing to the int64 fast
// path.
package overflow

import "math"

// AddOverflows reports whether a+b overflows the signed 64-bit range.
func AddOverflows(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	if b < 0 {
		return a < math.MinInt64-b
	}
	return false
}

// SubOverflows reports whether a-b overflows the signed 64-bit range.
func SubOverflows(a, b int64) bool {
	if b == math.MinInt64 {
		// -b cannot be represented; a-MinInt64 overflows for any a > 0.
		return a > 0
	}
	return AddOverflows(a, -b)
}

// MulOverflows reports whether a*b overflows the signed 64-bit range.
func MulOverflows(a, b int64) bool {
	if a == -1 && b == math.MinInt64 {
		return true
	}
	if b == -1 && a == math.MinInt64 {
		return true
	}
	if a == 0 || b == 0 || a == 1 || b == 1 {
		return false
	}
	if a == -1 || b == -1 {
		return false
	}
	r := a * b // wrapping multiply
	return r/a != b
}

// SafeAdd returns a+b and whether the operation overflowed; on overflow the
// returned value is 0.
func SafeAdd(a, b int64) (int64, bool) {
	if AddOverflows(a, b) {
		return 0, true
	}
	return a + b, false
}

// SafeSub returns a-b and whether the operation overflowed; on overflow the
// returned value is 0.
func SafeSub(a, b int64) (int64, bool) {
	if SubOverflows(a, b) {
		return 0, true
	}
	return a - b, false
}

// SafeMul returns a*b and whether the operation overflowed; on overflow the
// returned value is 0.
func SafeMul(a, b int64) (int64, bool) {
	if MulOverflows(a, b) {
		return 0, true
	}
	return a * b, false
}
