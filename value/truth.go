package value

// Truth reports the truthiness of a value: empty collections, empty
// strings and data, zero numbers, false booleans and the zero date are
// all false.
func Truth(v *Value) bool {
	switch v.Kind {
	case DictionaryKind:
		return v.Dict.Count() != 0
	case ArrayKind:
		return v.Arr.Count() != 0
	case StringKind:
		return v.String != ""
	case NumberKind:
		if v.Int64 != nil {
			return *v.Int64 != 0
		}
		return *v.Float64 != 0.0
	case BooleanKind:
		return v.Bool
	case DateKind:
		return !v.Time.IsZero()
	case DataKind:
		return len(v.Bytes) != 0
	default:
		panic("kind")
	}
}
