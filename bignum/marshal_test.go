package bignum

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type ledger struct {
	Name    string `json:"name" msgpack:"name"`
	Balance BigInt `json:"balance" msgpack:"balance"`
}

func TestJSON_Number(t *testing.T) {
	in := ledger{Name: "a", Balance: MustParse("-123456789012345678901234567890")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"name":"a","balance":-123456789012345678901234567890}`
	if string(data) != want {
		t.Fatalf("Marshal = %s, want %s", data, want)
	}
	var out ledger
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !out.Balance.Equal(in.Balance) {
		t.Errorf("Balance = %s, want %s", out.Balance, in.Balance)
	}
}

func TestJSON_QuotedAndNull(t *testing.T) {
	var out ledger
	if err := json.Unmarshal([]byte(`{"balance":"98765432109876543210"}`), &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.Balance.String() != "98765432109876543210" {
		t.Errorf("Balance = %s", out.Balance)
	}

	out.Balance = MustParse("5")
	if err := json.Unmarshal([]byte(`{"balance":null}`), &out); err != nil {
		t.Fatalf("Unmarshal(null) error: %v", err)
	}
	if out.Balance.String() != "5" {
		t.Errorf("null changed Balance to %s", out.Balance)
	}
}

func TestJSON_Invalid(t *testing.T) {
	var out ledger
	err := json.Unmarshal([]byte(`{"balance":1.5}`), &out)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Unmarshal(1.5) error = %v, want ErrInvalidFormat", err)
	}
}

func TestText(t *testing.T) {
	x := MustParse("-77")
	text, err := x.MarshalText()
	if err != nil || string(text) != "-77" {
		t.Fatalf("MarshalText = %q, %v", text, err)
	}
	var y BigInt
	if err := y.UnmarshalText([]byte("31415926535897932384626")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if y.String() != "31415926535897932384626" {
		t.Errorf("UnmarshalText = %s", y)
	}
	if err := y.UnmarshalText([]byte("3.14")); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("UnmarshalText(3.14) error = %v", err)
	}
}

func TestMsgpack(t *testing.T) {
	in := ledger{Name: "m", Balance: Factorial(30).Neg()}
	data, err := msgpack.Marshal(&in)
	if err != nil {
		t.Fatalf("msgpack.Marshal error: %v", err)
	}
	var out ledger
	if err := msgpack.Unmarshal(data, &out); err != nil {
		t.Fatalf("msgpack.Unmarshal error: %v", err)
	}
	if out.Name != "m" || !out.Balance.Equal(in.Balance) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestSQL(t *testing.T) {
	cases := []struct {
		src  any
		want string
	}{
		{int64(-9), "-9"},
		{"123456789012345678901", "123456789012345678901"},
		{[]byte("42"), "42"},
	}
	for _, tc := range cases {
		var s SQL
		if err := s.Scan(tc.src); err != nil {
			t.Fatalf("Scan(%v) error: %v", tc.src, err)
		}
		if s.Int.String() != tc.want {
			t.Errorf("Scan(%v) = %s, want %s", tc.src, s.Int, tc.want)
		}
		v, err := s.Value()
		if err != nil || v != tc.want {
			t.Errorf("Value() = %v, %v", v, err)
		}
	}

	var s SQL
	if err := s.Scan(nil); err == nil {
		t.Error("Scan(nil) succeeded")
	}
	if err := s.Scan(1.5); err == nil {
		t.Error("Scan(float64) succeeded")
	}
}
