// Package bencode implements the B-encoding used by the BitTorrent
// metainfo and tracker wire formats: integers, byte strings, lists and
// dictionaries, encoded deterministically with lexicographically sorted
// dictionary keys.
//
// This package grew out of the two independent, slightly different mini
// parsers eduardo-antunes/torrent-go used to carry (root package `main`'s
// parse.go, and internal/benc's copy of the same logic): here they are
// merged into one decoder that, unlike either original, tracks the exact
// byte range each dictionary value occupied so a caller can recover a
// sub-structure's canonical bytes without re-encoding it.
package bencode

// Kind identifies which of the four bencoded shapes a Value holds.
type Kind int

const (
	KindInt Kind = iota
	KindString
	KindList
	KindDict
)

// Value is a decoded bencoded value. Exactly one of Int, Str, List or Dict
// is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Int  int64
	Str  []byte
	List []Value
	Dict *Dict
}

func IntValue(n int64) Value    { return Value{Kind: KindInt, Int: n} }
func StringValue(s []byte) Value { return Value{Kind: KindString, Str: s} }
func ListValue(l []Value) Value  { return Value{Kind: KindList, List: l} }
func DictValue(d *Dict) Value    { return Value{Kind: KindDict, Dict: d} }

// Dict is a bencoded dictionary. Keys are kept in the order they were
// inserted (strict decode guarantees that order is already ascending);
// Raw holds the exact bencoded bytes of each key's value as found in the
// source text, so callers needing a sub-structure's canonical bytes (the
// info dict, for info-hash purposes) never have to re-encode anything.
type Dict struct {
	keys []string
	vals map[string]Value
	raw  map[string][]byte
}

// NewDict returns an empty dictionary, ready for Set calls in key order.
func NewDict() *Dict {
	return &Dict{vals: make(map[string]Value), raw: make(map[string][]byte)}
}

// Set inserts or overwrites a key. raw may be nil when the value was
// built programmatically rather than decoded from text.
func (d *Dict) Set(key string, v Value, raw []byte) {
	if _, exists := d.vals[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
	d.raw[key] = raw
}

// Keys returns the dictionary's keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get looks up a key's decoded value.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.vals[key]
	return v, ok
}

// Raw returns the exact bencoded bytes a key's value occupied in the
// source text that was decoded, if this dict came from a Decoder.
func (d *Dict) Raw(key string) ([]byte, bool) {
	r, ok := d.raw[key]
	return r, ok
}

// Len reports the number of keys in the dictionary.
func (d *Dict) Len() int { return len(d.keys) }
