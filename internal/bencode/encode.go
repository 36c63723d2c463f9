package bencode

import (
	"bytes"
	"fmt"
	"sort"
)

// Encode serializes a Go value into canonical bencoded bytes: map keys
// are always emitted in ascending byte order, regardless of how the input
// map iterates, so Encode(Decode(x)) reproduces a strict decoder's input
// byte-for-byte (the round-trip law spec requires).
//
// Accepted types: int, int64, uint64, string, []byte, []any, []string,
// map[string]any, Value and *Dict. eduardo-antunes/torrent-go's encodeDict
// walked a Go map directly with no sort step at all, which only happened
// to look canonical because Go's small-map iteration is often stable in
// practice; that's not a guarantee the encoder here relies on.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTo(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case int:
		encodeInt(buf, int64(t))
	case int64:
		encodeInt(buf, t)
	case uint64:
		encodeInt(buf, int64(t))
	case uint:
		encodeInt(buf, int64(t))
	case string:
		encodeString(buf, []byte(t))
	case []byte:
		encodeString(buf, t)
	case []any:
		buf.WriteByte('l')
		for _, e := range t {
			if err := encodeTo(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
	case []string:
		buf.WriteByte('l')
		for _, e := range t {
			encodeString(buf, []byte(e))
		}
		buf.WriteByte('e')
	case [][]string:
		buf.WriteByte('l')
		for _, tier := range t {
			if err := encodeTo(buf, tier); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
	case map[string]any:
		return encodeMap(buf, t)
	case Value:
		return encodeValue(buf, t)
	case *Dict:
		return encodeDict(buf, t)
	default:
		return fmt.Errorf("bencode: unsupported type %T", v)
	}
	return nil
}

func encodeInt(buf *bytes.Buffer, n int64) {
	fmt.Fprintf(buf, "i%de", n)
}

func encodeString(buf *bytes.Buffer, s []byte) {
	fmt.Fprintf(buf, "%d:", len(s))
	buf.Write(s)
}

func encodeMap(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buf.WriteByte('d')
	for _, k := range keys {
		encodeString(buf, []byte(k))
		if err := encodeTo(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('e')
	return nil
}

func encodeDict(buf *bytes.Buffer, d *Dict) error {
	keys := d.Keys()
	sort.Strings(keys)
	buf.WriteByte('d')
	for _, k := range keys {
		encodeString(buf, []byte(k))
		v, _ := d.Get(k)
		if err := encodeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('e')
	return nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch v.Kind {
	case KindInt:
		encodeInt(buf, v.Int)
	case KindString:
		encodeString(buf, v.Str)
	case KindList:
		buf.WriteByte('l')
		for _, e := range v.List {
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
	case KindDict:
		return encodeDict(buf, v.Dict)
	default:
		return fmt.Errorf("bencode: invalid value kind %d", v.Kind)
	}
	return nil
}
