package datagen

import "unsafe"

// Scalar constrains the element types operand buffers may carry.
type Scalar interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// View reinterprets buf as a slice of T without copying. Trailing bytes that
// do not complete an element are ignored.
func View[T Scalar](buf []byte) []T {
	var zero T
	n := len(buf) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// Bytes reinterprets a scalar slice as its raw byte representation without
// copying.
func Bytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}
