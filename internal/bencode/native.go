package bencode

// ToNative converts a decoded Value tree into plain Go values suitable for
// github.com/mitchellh/mapstructure to decode into a struct: byte strings
// become Go strings (bytes preserved 1:1, per spec's ISO-8859-1 treatment
// of any byte string surfaced as text), integers become int64, lists
// become []any and dictionaries become map[string]any.
//
// This is the bridge eduardo-antunes/torrent-go's benc.ParseTorrent used
// implicitly by decoding straight into map[string]any; decoupling it from
// the decoder lets the decoder stay byte-accurate (Dict.Raw) while the
// metainfo package still gets the convenient shape mapstructure wants.
func ToNative(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindString:
		return string(v.Str)
	case KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = ToNative(e)
		}
		return out
	case KindDict:
		out := make(map[string]any, v.Dict.Len())
		for _, k := range v.Dict.Keys() {
			e, _ := v.Dict.Get(k)
			out[k] = ToNative(e)
		}
		return out
	default:
		return nil
	}
}
