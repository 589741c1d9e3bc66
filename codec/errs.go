package codec

import "errors"

var (
	// ErrDecode wraps every decode failure: malformed bytes, values
	// outside the property-list model (null, custom tags), duplicate
	// dictionary keys. Nothing of a failed decode is adopted.
	ErrDecode = errors.New("decode error")

	// ErrEncode wraps encode failures, notably dates and data reaching
	// the JSON encoder without the lossy option.
	ErrEncode = errors.New("encode error")
)
