package value

// Pair is one dictionary entry. Pairs are immutable: the With* forms
// return fresh pairs and the owning dictionary commits them through
// Replace, never by writing through an existing pair.
type Pair struct {
	Key   string
	Value *Value
}

func NewPair(key string, v *Value) Pair {
	return Pair{Key: key, Value: v}
}

// WithKey returns a pair with the new key and the receiver's value. The
// receiver and its owning collection are untouched.
func (p Pair) WithKey(key string) Pair {
	return Pair{Key: key, Value: p.Value}
}

// WithValue returns a pair with the receiver's key and the new value.
func (p Pair) WithValue(v *Value) Pair {
	return Pair{Key: p.Key, Value: v}
}
