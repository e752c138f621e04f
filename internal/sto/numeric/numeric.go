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

// Package numeric implements the tagged numeric value that the surface
// language's `numeric` type lowers to: a compact int64 fast path, a
// float64 path for non-integer literals, and transparent promotion to
// bigdecimal.Decimal when int64 arithmetic would overflow.
package numeric

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/melp-lang/melpc/internal/sto/bigdecimal"
	"github.com/melp-lang/melpc/internal/sto/overflow"
)

// Kind discriminates the storage representation of a Value.
type Kind int

const (
	KindI64 Kind = iota
	KindF64
	KindBig
)

func (k Kind) String() string {
	switch k {
	case KindI64:
		return "i64"
	case KindF64:
		return "f64"
	case KindBig:
		return "big"
	default:
		return "unknown"
	}
}

// ErrInvalidLiteral is returned by FromLiteral for malformed literal text.
var ErrInvalidLiteral = errors.New("numeric: invalid literal")

// ErrDivideByZero is returned by Div when dividing by zero.
var ErrDivideByZero = errors.New("numeric: division by zero")

// Value is a discriminated numeric: exactly one of i64/f64/big is live,
// selected by kind.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	big  bigdecimal.Decimal
}

// Kind reports the value's storage kind.
func (v Value) Kind() Kind { return v.kind }

// FromInt64 builds an I64-tagged value.
func FromInt64(i int64) Value { return Value{kind: KindI64, i64: i} }

// FromFloat64 builds an F64-tagged value.
func FromFloat64(f float64) Value { return Value{kind: KindF64, f64: f} }

// FromBigDecimal builds a BIG-tagged value.
func FromBigDecimal(d bigdecimal.Decimal) Value { return Value{kind: KindBig, big: d} }

// FromLiteral infers the surface-level tag from literal text: a decimal
// point forces F64; otherwise count digits — more than 19 forces BIG,
// exactly 19 requires a per-digit overflow probe to decide between I64 and
// BIG, fewer than 19 is always I64.
func FromLiteral(text string) (Value, error) {
	if text == "" {
		return Value{}, ErrInvalidLiteral
	}
	neg := false
	body := text
	if body[0] == '-' || body[0] == '+' {
		neg = body[0] == '-'
		body = body[1:]
	}
	if body == "" {
		return Value{}, ErrInvalidLiteral
	}
	if strings.ContainsRune(body, '.') {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrInvalidLiteral, text)
		}
		return FromFloat64(f), nil
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return Value{}, ErrInvalidLiteral
		}
	}
	if len(body) > 19 {
		d, err := bigdecimal.FromString(text)
		if err != nil {
			return Value{}, err
		}
		return FromBigDecimal(d), nil
	}
	if len(body) == 19 {
		acc, overflowed := accumulateDigits(body)
		if overflowed {
			d, err := bigdecimal.FromString(text)
			if err != nil {
				return Value{}, err
			}
			return FromBigDecimal(d), nil
		}
		if neg {
			acc = -acc
		}
		return FromInt64(acc), nil
	}
	acc, _ := accumulateDigits(body)
	if neg {
		acc = -acc
	}
	return FromInt64(acc), nil
}

// accumulateDigits builds an int64 from an unsigned decimal digit run,
// checking for overflow at every pre-multiply and pre-add step.
func accumulateDigits(digits string) (int64, bool) {
	var acc int64
	for i := 0; i < len(digits); i++ {
		d := int64(digits[i] - '0')
		product, ov := overflow.SafeMul(acc, 10)
		if ov {
			return 0, true
		}
		sum, ov := overflow.SafeAdd(product, d)
		if ov {
			return 0, true
		}
		acc = sum
	}
	return acc, false
}

func rank(k Kind) int { return int(k) }

// promote widens a and b to a common kind, in order I64 < F64 < BIG.
func promote(a, b Value) (Value, Value) {
	if rank(a.kind) == rank(b.kind) {
		return a, b
	}
	target := a.kind
	if rank(b.kind) > rank(target) {
		target = b.kind
	}
	return widen(a, target), widen(b, target)
}

func widen(v Value, target Kind) Value {
	if v.kind == target {
		return v
	}
	switch target {
	case KindF64:
		switch v.kind {
		case KindI64:
			return FromFloat64(float64(v.i64))
		case KindBig:
			f, _ := strconv.ParseFloat(v.big.String(), 64)
			return FromFloat64(f)
		}
	case KindBig:
		switch v.kind {
		case KindI64:
			return FromBigDecimal(bigdecimal.FromInt64(v.i64))
		case KindF64:
			// Non-integer F64 values cannot promote to BIG losslessly;
			// truncate toward zero, matching the integer-only BigDecimal
			// contract.
			d, err := bigdecimal.FromString(strconv.FormatFloat(math.Trunc(v.f64), 'f', 0, 64))
			if err == nil {
				return FromBigDecimal(d)
			}
			return FromBigDecimal(bigdecimal.FromInt64(int64(v.f64)))
		}
	}
	return v
}

// Add returns a+b, promoting to BigDecimal on int64 overflow.
func Add(a, b Value) Value {
	a, b = promote(a, b)
	switch a.kind {
	case KindI64:
		sum, ov := overflow.SafeAdd(a.i64, b.i64)
		if ov {
			return FromBigDecimal(bigdecimal.Add(bigdecimal.FromInt64(a.i64), bigdecimal.FromInt64(b.i64)))
		}
		return FromInt64(sum)
	case KindF64:
		return FromFloat64(a.f64 + b.f64)
	default:
		return FromBigDecimal(bigdecimal.Add(a.big, b.big))
	}
}

// Sub returns a-b, promoting to BigDecimal on int64 overflow.
func Sub(a, b Value) Value {
	a, b = promote(a, b)
	switch a.kind {
	case KindI64:
		diff, ov := overflow.SafeSub(a.i64, b.i64)
		if ov {
			return FromBigDecimal(bigdecimal.Sub(bigdecimal.FromInt64(a.i64), bigdecimal.FromInt64(b.i64)))
		}
		return FromInt64(diff)
	case KindF64:
		return FromFloat64(a.f64 - b.f64)
	default:
		return FromBigDecimal(bigdecimal.Sub(a.big, b.big))
	}
}

// Mul returns a*b, promoting to BigDecimal on int64 overflow.
func Mul(a, b Value) Value {
	a, b = promote(a, b)
	switch a.kind {
	case KindI64:
		prod, ov := overflow.SafeMul(a.i64, b.i64)
		if ov {
			return FromBigDecimal(bigdecimal.Mul(bigdecimal.FromInt64(a.i64), bigdecimal.FromInt64(b.i64)))
		}
		return FromInt64(prod)
	case KindF64:
		return FromFloat64(a.f64 * b.f64)
	default:
		return FromBigDecimal(bigdecimal.Mul(a.big, b.big))
	}
}

// Div returns a/b. Integer division truncates toward zero; BigDecimal
// division is the full-precision schoolbook long division documented on
// bigdecimal.DivMod.
func Div(a, b Value) (Value, error) {
	a, b = promote(a, b)
	switch a.kind {
	case KindI64:
		if b.i64 == 0 {
			return Value{}, ErrDivideByZero
		}
		if a.i64 == math.MinInt64 && b.i64 == -1 {
			// Overflow case (MinInt64 / -1): promote rather than wrap.
			q, _, err := bigdecimal.DivMod(bigdecimal.FromInt64(a.i64), bigdecimal.FromInt64(b.i64))
			if err != nil {
				return Value{}, err
			}
			return FromBigDecimal(q), nil
		}
		return FromInt64(a.i64 / b.i64), nil
	case KindF64:
		if b.f64 == 0 {
			return Value{}, ErrDivideByZero
		}
		return FromFloat64(a.f64 / b.f64), nil
	default:
		q, _, err := bigdecimal.DivMod(a.big, b.big)
		if err != nil {
			if errors.Is(err, bigdecimal.ErrDivideByZero) {
				return Value{}, ErrDivideByZero
			}
			return Value{}, err
		}
		return FromBigDecimal(q), nil
	}
}

// Compare orders a and b by the mathematical value they represent,
// regardless of tag.
func Compare(a, b Value) int {
	if (a.kind == KindF64) != (b.kind == KindF64) {
		// Compare a finite F64 against the other operand exactly, as
		// rationals, so promotion neither rounds an I64 nor truncates the F64.
		f, other, sign := a.f64, b, 1
		if b.kind == KindF64 {
			f, other, sign = b.f64, a, -1
		}
		if rf := new(big.Rat).SetFloat64(f); rf != nil {
			if ro, ok := new(big.Rat).SetString(other.String()); ok {
				return sign * rf.Cmp(ro)
			}
		}
	}
	a, b = promote(a, b)
	switch a.kind {
	case KindI64:
		switch {
		case a.i64 < b.i64:
			return -1
		case a.i64 > b.i64:
			return 1
		default:
			return 0
		}
	case KindF64:
		switch {
		case a.f64 < b.f64:
			return -1
		case a.f64 > b.f64:
			return 1
		default:
			return 0
		}
	default:
		return bigdecimal.Compare(a.big, b.big)
	}
}

// String renders v using its own per-tag formatting: plain decimal for
// I64, shortest round-trip form for F64, canonical signed digit string for
// BIG.
func (v Value) String() string {
	switch v.kind {
	case KindI64:
		return strconv.FormatInt(v.i64, 10)
	case KindF64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	default:
		return v.big.String()
	}
}
