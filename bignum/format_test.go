package bignum

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat_Verbs(t *testing.T) {
	x := MustParse("-1234")
	y := MustParse("1234")
	cases := []struct {
		format string
		arg    BigInt
		want   string
	}{
		{"%d", x, "-1234"},
		{"%s", y, "1234"},
		{"%v", y, "1234"},
		{"%+d", y, "+1234"},
		{"%+d", x, "-1234"},
		{"% d", y, " 1234"},
		{"%8d", y, "    1234"},
		{"%-8d|", y, "1234    |"},
		{"%08d", x, "-0001234"},
		{"%+08d", y, "+0001234"},
		{"%2d", y, "1234"},
		{"%d", Zero(), "0"},
		{"%x", y, "%!x(bignum.BigInt=1234)"},
	}
	for _, tc := range cases {
		if got := fmt.Sprintf(tc.format, tc.arg); got != tc.want {
			t.Errorf("Sprintf(%q, %s) = %q, want %q", tc.format, tc.arg.String(), got, tc.want)
		}
	}
}

func TestAppend(t *testing.T) {
	buf := []byte("n=")
	buf = MustParse("-90").Append(buf)
	if string(buf) != "n=-90" {
		t.Errorf("Append = %q", buf)
	}
}

func TestScan_Stream(t *testing.T) {
	var a, b, c BigInt
	n, err := fmt.Sscan("  12345678901234567890 -42\n007", &a, &b, &c)
	if err != nil {
		t.Fatalf("Sscan error: %v (scanned %d)", err, n)
	}
	if a.String() != "12345678901234567890" || b.String() != "-42" || c.String() != "7" {
		t.Errorf("Sscan = %s %s %s", a, b, c)
	}
}

func TestScan_StopsAtNonDigit(t *testing.T) {
	var a BigInt
	var rest string
	if _, err := fmt.Sscan("99abc", &a, &rest); err != nil {
		t.Fatalf("Sscan error: %v", err)
	}
	if a.String() != "99" || rest != "abc" {
		t.Errorf("Sscan = %s, %q", a, rest)
	}
}

func TestScan_Invalid(t *testing.T) {
	var a BigInt
	_, err := fmt.Sscan("-x", &a)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Sscan(\"-x\") error = %v, want ErrInvalidFormat", err)
	}
	if _, err := fmt.Sscan("abc", &a); err == nil {
		t.Error("Sscan(\"abc\") succeeded")
	}
}

func TestScan_Fscan(t *testing.T) {
	r := strings.NewReader("1 2 3")
	sum := Zero()
	for {
		var v BigInt
		if _, err := fmt.Fscan(r, &v); err != nil {
			break
		}
		sum.AddAssign(v)
	}
	if sum.String() != "6" {
		t.Errorf("sum = %s, want 6", sum)
	}
}
