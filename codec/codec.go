// Package codec provides value encoders used by the cache for size
// accounting and by the keys package for canonical hashing.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// SizeOf returns a sizer reporting the encoded length of a value.
// Values that fail to encode are sized as 0.
func SizeOf[V any](c Codec[V]) func(V) int {
	return func(v V) int {
		b, err := c.Encode(v)
		if err != nil {
			return 0
		}
		return len(b)
	}
}
