package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/bignum"
)

func TestDiskCache_PutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("2^100", nil, 1000)
	var out Payload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}

	want := bignum.MustParse("1267650600228229401496703205376")
	if err := c.Put(key, &Payload{Expr: "2^100", Result: want, Digits: want.NumDigits()}); err != nil {
		t.Fatal(err)
	}
	ok, err := c.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("Get after Put = %v, %v", ok, err)
	}
	if !out.Result.Equal(want) || out.Expr != "2^100" || out.Digits != 31 {
		t.Errorf("payload = %+v", out)
	}
	if out.Created.IsZero() {
		t.Error("Created not set")
	}
}

func TestDiskCache_NegativeResult(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("-7/2", nil, 0)
	if err := c.Put(key, &Payload{Result: bignum.FromInt64(-3)}); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, _ := c.Get(key, &out); !ok || out.Result.String() != "-3" {
		t.Errorf("got %v, %s", ok, out.Result)
	}
}

func TestKeyFor(t *testing.T) {
	x1 := map[string]bignum.BigInt{"x": bignum.FromInt64(1), "y": bignum.FromInt64(2)}
	x1b := map[string]bignum.BigInt{"y": bignum.FromInt64(2), "x": bignum.FromInt64(1)}
	x2 := map[string]bignum.BigInt{"x": bignum.FromInt64(2), "y": bignum.FromInt64(2)}

	if KeyFor("x+y", x1, 0) != KeyFor("x+y", x1b, 0) {
		t.Error("key depends on map order")
	}
	if KeyFor("x+y", x1, 0) == KeyFor("x+y", x2, 0) {
		t.Error("key ignores variable values")
	}
	if KeyFor("x+y", x1, 0) == KeyFor("x+y", x1, 10) {
		t.Error("key ignores digit limit")
	}
	if KeyFor("1+2", nil, 0) == KeyFor("1+3", nil, 0) {
		t.Error("key ignores expression")
	}
}

func TestDiskCache_StaleEntriesMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("1", nil, 0)
	if err := c.Put(key, &Payload{Result: bignum.One()}); err != nil {
		t.Fatal(err)
	}

	old, err := msgpack.Marshal(&Payload{Schema: schemaVersion + 1, Result: bignum.One()})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.pathFor(key), old, 0o644); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Errorf("other schema = %v, %v", ok, err)
	}

	if err := os.WriteFile(c.pathFor(key), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Errorf("truncated entry = %v, %v", ok, err)
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "c")
	c, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	key := KeyFor("1", nil, 0)
	if err := c.Put(key, &Payload{Result: bignum.One()}); err != nil {
		t.Fatal(err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	var out Payload
	if ok, _ := c.Get(key, &out); ok {
		t.Error("entry survived DropAll")
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("cache dir missing after DropAll: %v", err)
	}
	if err := c.Put(key, &Payload{Result: bignum.One()}); err != nil {
		t.Errorf("Put after DropAll: %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var c *DiskCache
	if err := c.Put(Key{}, &Payload{}); err != nil {
		t.Error(err)
	}
	if ok, err := c.Get(Key{}, &Payload{}); ok || err != nil {
		t.Error(ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Error(err)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir("bigcalc")
	if err != nil || dir != filepath.Join("/tmp/xdg", "bigcalc") {
		t.Errorf("DefaultDir = %q, %v", dir, err)
	}
}
