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

// Package bigdecimal implements a compact arbitrary-precision decimal integer:
// sign-magnitude, stored as a canonical decimal digit string. It is the
// overflow sink for int64 arithmetic (internal/sto/numeric) and a
// user-visible numeric form in its own right.
package bigdecimal

import (
	"errors"
	"strings"

	"modernc.org/mathutil"
)

// ErrInvalidLiteral is returned when FromString is given text that is not a
// valid (optionally signed) decimal integer.
var ErrInvalidLiteral = errors.New("bigdecimal: invalid literal")

// ErrDivideByZero is returned by DivMod when the divisor is canonical zero.
var ErrDivideByZero = errors.New("bigdecimal: division by zero")

// Decimal is a sign-magnitude arbitrary-precision decimal integer.
//
// digits is the canonical magnitude: most-significant digit first, no
// leading zeros, and exactly "0" for the value zero. neg is always false
// when digits == "0" — there is no negative zero.
type Decimal struct {
	digits string
	neg    bool
}

// Zero is the canonical representation of 0.
var Zero = Decimal{digits: "0"}

// FromInt64 constructs a Decimal equal to v.
func FromInt64(v int64) Decimal {
	if v == 0 {
		return Zero
	}
	neg := v < 0
	// Negate via uint64 to handle math.MinInt64 without overflow.
	mag := uint64(v)
	if neg {
		mag = -uint64(v)
	}
	return Decimal{digits: formatUint64(mag), neg: neg}
}

func formatUint64(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// FromString parses an optionally "-"-prefixed run of decimal digits.
func FromString(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, ErrInvalidLiteral
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	} else if s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return Decimal{}, ErrInvalidLiteral
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Decimal{}, ErrInvalidLiteral
		}
	}
	digits := canonicalMagnitude(s)
	if digits == "0" {
		neg = false
	}
	return Decimal{digits: digits, neg: neg}, nil
}

func canonicalMagnitude(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

// String renders the canonical signed decimal form.
func (d Decimal) String() string {
	if d.neg {
		return "-" + d.digits
	}
	return d.digits
}

// IsZero reports whether d is the canonical zero value.
func (d Decimal) IsZero() bool {
	return d.digits == "0" || d.digits == ""
}

// Negative reports the sign flag.
func (d Decimal) Negative() bool {
	return d.neg
}

// Digits returns the canonical unsigned magnitude digit string.
func (d Decimal) Digits() string {
	if d.digits == "" {
		return "0"
	}
	return d.digits
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	if d.IsZero() {
		return Zero
	}
	return Decimal{digits: d.digits, neg: !d.neg}
}

// compareMagnitude compares two canonical (no leading zero) digit strings by
// numeric magnitude: longer digit count wins, else lexicographic.
func compareMagnitude(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// addMagnitude returns the digit string for a+b, both canonical magnitudes,
// via right-to-left schoolbook addition with carry.
func addMagnitude(a, b string) string {
	i, j := len(a)-1, len(b)-1
	carry := byte(0)
	out := make([]byte, 0, max(len(a), len(b))+1)
	for i >= 0 || j >= 0 || carry != 0 {
		var da, db byte
		if i >= 0 {
			da = a[i] - '0'
			i--
		}
		if j >= 0 {
			db = b[j] - '0'
			j--
		}
		sum := da + db + carry
		out = append(out, '0'+sum%10)
		carry = sum / 10
	}
	reverseBytes(out)
	return canonicalMagnitude(string(out))
}

// subMagnitude returns the digit string for a-b; precondition a >= b in
// magnitude.
func subMagnitude(a, b string) string {
	i, j := len(a)-1, len(b)-1
	borrow := int8(0)
	out := make([]byte, 0, len(a))
	for i >= 0 {
		da := int8(a[i] - '0')
		var db int8
		if j >= 0 {
			db = int8(b[j] - '0')
			j--
		}
		d := da - db - borrow
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		out = append(out, byte('0'+d))
		i--
	}
	reverseBytes(out)
	result := canonicalMagnitude(string(out))
	if result == "" {
		return "0"
	}
	return result
}

func reverseBytes(b []byte) {
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
}

func max(a, b int) int {
	return mathutil.Max(a, b)
}

// Add returns a+b.
func Add(a, b Decimal) Decimal {
	if a.neg == b.neg {
		return Decimal{digits: addMagnitude(a.Digits(), b.Digits()), neg: a.neg}.canon()
	}
	// Signs differ: the larger magnitude dictates the sign.
	switch compareMagnitude(a.Digits(), b.Digits()) {
	case 0:
		return Zero
	case 1:
		return Decimal{digits: subMagnitude(a.Digits(), b.Digits()), neg: a.neg}.canon()
	default:
		return Decimal{digits: subMagnitude(b.Digits(), a.Digits()), neg: b.neg}.canon()
	}
}

// Sub returns a-b.
func Sub(a, b Decimal) Decimal {
	return Add(a, b.Neg())
}

// Mul returns a*b.
func Mul(a, b Decimal) Decimal {
	if a.IsZero() || b.IsZero() {
		return Zero
	}
	da, db := a.Digits(), b.Digits()
	acc := make([]int, len(da)+len(db))
	for i := len(da) - 1; i >= 0; i-- {
		digitA := int(da[i] - '0')
		if digitA == 0 {
			continue
		}
		carry := 0
		for j := len(db) - 1; j >= 0; j-- {
			digitB := int(db[j] - '0')
			pos := i + j + 1
			prod := acc[pos] + digitA*digitB + carry
			acc[pos] = prod % 10
			carry = prod / 10
		}
		pos := i
		for carry > 0 {
			prod := acc[pos] + carry
			acc[pos] = prod % 10
			carry = prod / 10
			pos--
		}
	}
	buf := make([]byte, len(acc))
	for i, d := range acc {
		buf[i] = byte('0' + d)
	}
	digits := canonicalMagnitude(string(buf))
	neg := a.neg != b.neg
	if digits == "0" {
		neg = false
	}
	return Decimal{digits: digits, neg: neg}
}

// Compare returns -1, 0, or 1 as a<b, a==b, a>b.
func Compare(a, b Decimal) int {
	if a.neg != b.neg {
		if a.IsZero() && b.IsZero() {
			return 0
		}
		if a.neg {
			return -1
		}
		return 1
	}
	cmp := compareMagnitude(a.Digits(), b.Digits())
	if a.neg {
		return -cmp
	}
	return cmp
}

// canon enforces the zero/no-leading-zero invariant on a freshly constructed
// Decimal whose digits field may not yet be canonicalized.
func (d Decimal) canon() Decimal {
	digits := canonicalMagnitude(d.Digits())
	neg := d.neg
	if digits == "0" {
		neg = false
	}
	return Decimal{digits: digits, neg: neg}
}

// DivMod computes full-precision truncating integer division: a = q*b + r,
// with r having the same sign as a (or zero) and |r| < |b|. This resolves
// the BigDecimal division open question by implementing schoolbook long
// division on the decimal digit strings rather than narrowing through a
// machine integer.
func DivMod(a, b Decimal) (q, r Decimal, err error) {
	if b.IsZero() {
		return Decimal{}, Decimal{}, ErrDivideByZero
	}
	if a.IsZero() {
		return Zero, Zero, nil
	}
	dividend := a.Digits()
	divisor := b.Digits()
	if compareMagnitude(dividend, divisor) < 0 {
		return Zero, a, nil
	}

	quotientDigits := make([]byte, 0, len(dividend))
	remainder := "0"
	for i := 0; i < len(dividend); i++ {
		remainder = canonicalMagnitude(remainder + string(dividend[i]))
		digit := quotientDigitFor(remainder, divisor)
		quotientDigits = append(quotientDigits, byte('0'+digit))
		if digit > 0 {
			remainder = subMagnitude(remainder, repeatSubtract(divisor, digit))
		}
	}
	qDigits := canonicalMagnitude(string(quotientDigits))
	qNeg := a.neg != b.neg
	if qDigits == "0" {
		qNeg = false
	}
	rDigits := canonicalMagnitude(remainder)
	rNeg := a.neg
	if rDigits == "0" {
		rNeg = false
	}
	return Decimal{digits: qDigits, neg: qNeg}, Decimal{digits: rDigits, neg: rNeg}, nil
}

// quotientDigitFor finds the largest digit d in [0,9] such that d*divisor <=
// remainder, via binary search over the digit space (mathutil.Min/Max clamp
// the search bounds rather than hand-rolled comparisons).
func quotientDigitFor(remainder, divisor string) int {
	lo, hi := 0, 9
	best := 0
	for lo <= hi {
		mid := mathutil.Min(hi, (lo+hi)/2)
		mid = mathutil.Max(lo, mid)
		candidate := repeatSubtract(divisor, mid)
		if compareMagnitude(candidate, remainder) <= 0 {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// repeatSubtract returns divisor*n for n in [0,9] via repeated addition,
// which is cheap at single-digit scale and avoids recursing into Mul.
func repeatSubtract(divisor string, n int) string {
	result := "0"
	for i := 0; i < n; i++ {
		result = addMagnitude(result, divisor)
	}
	return result
}
