package bignum

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalText implements encoding.TextMarshaler.
func (x BigInt) MarshalText() ([]byte, error) {
	return x.Append(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *BigInt) UnmarshalText(text []byte) error {
	x, err := Parse(string(text))
	if err != nil {
		return err
	}
	*z = x
	return nil
}

// MarshalJSON implements json.Marshaler. The value is written as a bare JSON number.
func (x BigInt) MarshalJSON() ([]byte, error) {
	return x.Append(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler.
// It accepts a JSON number or a quoted decimal string; null leaves z unchanged.
func (z *BigInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return z.UnmarshalText(data)
}

// EncodeMsgpack implements msgpack.CustomEncoder. Values travel as decimal strings.
func (x BigInt) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(x.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (z *BigInt) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return z.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer, storing the value as decimal text.
func (x BigInt) Value() (driver.Value, error) {
	return x.String(), nil
}

// SQL adapts a BigInt to database/sql. BigInt's own Scan method is the
// fmt.Scanner one, so rows are scanned through this wrapper.
type SQL struct {
	Int BigInt
}

// Scan implements sql.Scanner for int64, string and []byte sources.
func (z *SQL) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return errors.New("bignum: cannot scan NULL into BigInt")
	case int64:
		z.Int = FromInt64(v)
		return nil
	case string:
		return z.Int.UnmarshalText([]byte(v))
	case []byte:
		return z.Int.UnmarshalText(v)
	default:
		return fmt.Errorf("bignum: cannot scan %T into BigInt", src)
	}
}

// Value implements driver.Valuer.
func (z SQL) Value() (driver.Value, error) {
	return z.Int.Value()
}
