package uncon

import (
	"bytes"
	"unsafe"
)

// Pointer reinterprets a *U as a *T. T and U must have compatible memory layouts.
func Pointer[T, U any]() Func[*U, *T] {
	return func(p *U) *T {
		return (*T)(unsafe.Pointer(p))
	}
}

// Slice reinterprets a []U as a []T of the same length. T and U must have the same size
// and compatible memory layouts.
func Slice[T, U any]() Func[[]U, []T] {
	return func(s []U) []T {
		if s == nil {
			return nil
		}

		return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
	}
}

// BytesToString views b as a string without copying. The bytes must hold valid text and
// must not be modified afterwards.
var BytesToString Func[[]byte, string] = func(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes views s as a byte slice without copying. The returned slice must never be
// written to.
var StringToBytes Func[string, []byte] = func(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BufferToString takes ownership of the contents of buf as a string. buf must not be used
// afterwards.
var BufferToString Func[*bytes.Buffer, string] = func(buf *bytes.Buffer) string {
	return ConvertInto(buf.Bytes(), Into[[]byte, string](BytesToString))
}
