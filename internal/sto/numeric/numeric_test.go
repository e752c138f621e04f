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

package numeric

import (
	"testing"

	"github.com/melp-lang/melpc/internal/sto/bigdecimal"
)

func TestFromLiteralKinds(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"0", KindI64},
		{"42", KindI64},
		{"-42", KindI64},
		{"3.14", KindF64},
		{"-0.5", KindF64},
		{"1234567890123456789", KindI64},  // 19 digits, fits int64
		{"9999999999999999999", KindBig},  // 19 digits, overflows int64
		{"12345678901234567890", KindBig}, // 20 digits
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := FromLiteral(tt.text)
			if err != nil {
				t.Fatalf("FromLiteral(%q): %v", tt.text, err)
			}
			if v.Kind() != tt.want {
				t.Errorf("FromLiteral(%q).Kind() = %v, want %v", tt.text, v.Kind(), tt.want)
			}
		})
	}
}

func TestAddPromotesOnOverflow(t *testing.T) {
	a := FromInt64(9223372036854775807)
	b := FromInt64(1)
	got := Add(a, b)
	if got.Kind() != KindBig {
		t.Fatalf("Add should promote to BIG on overflow, got kind %v", got.Kind())
	}
	if got.String() != "9223372036854775808" {
		t.Errorf("Add = %q, want 9223372036854775808", got.String())
	}
}

func TestAddNoOverflowStaysI64(t *testing.T) {
	got := Add(FromInt64(2), FromInt64(3))
	if got.Kind() != KindI64 || got.String() != "5" {
		t.Errorf("Add(2,3) = kind %v %q, want I64 \"5\"", got.Kind(), got.String())
	}
}

func TestMixedTagPromotion(t *testing.T) {
	i := FromInt64(3)
	f := FromFloat64(1.5)
	got := Add(i, f)
	if got.Kind() != KindF64 {
		t.Fatalf("I64+F64 should promote to F64, got %v", got.Kind())
	}
	if got.String() != "4.5" {
		t.Errorf("Add(3, 1.5) = %q, want 4.5", got.String())
	}
}

func TestCompareAcrossTags(t *testing.T) {
	i := FromInt64(5)
	f := FromFloat64(5.0)
	if Compare(i, f) != 0 {
		t.Error("5 (I64) should equal 5.0 (F64)")
	}
	bigVal, err := bigdecimal.FromString("5")
	if err != nil {
		t.Fatal(err)
	}
	big := FromBigDecimal(bigVal)
	if Compare(i, big) != 0 {
		t.Error("5 (I64) should equal 5 (BIG)")
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(FromInt64(5), FromInt64(0)); err != ErrDivideByZero {
		t.Errorf("Div by zero (I64) = %v, want ErrDivideByZero", err)
	}
	if _, err := Div(FromFloat64(5), FromFloat64(0)); err != ErrDivideByZero {
		t.Errorf("Div by zero (F64) = %v, want ErrDivideByZero", err)
	}
}

func TestDivTruncates(t *testing.T) {
	got, err := Div(FromInt64(7), FromInt64(2))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "3" {
		t.Errorf("Div(7,2) = %q, want 3", got.String())
	}
}

