package primitive

import (
	"math"
	"strconv"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is one of the ten integer kinds a data-less enum may use as its representation.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var goNames = [...]string{
	KindInt:    "int",
	KindInt8:   "int8",
	KindInt16:  "int16",
	KindInt32:  "int32",
	KindInt64:  "int64",
	KindUint:   "uint",
	KindUint8:  "uint8",
	KindUint16: "uint16",
	KindUint32: "uint32",
	KindUint64: "uint64",
}

// aliases are the predeclared Go aliases of integer kinds.
var aliases = map[string]KindEnum{
	"byte": KindUint8,
	"rune": KindInt32,
}

// Lookup returns the integer kind named by a Go type identifier. The match is case-sensitive
// and accepts the predeclared aliases byte and rune.
func Lookup(name string) (KindEnum, bool) {
	if k, ok := aliases[name]; ok {
		return k, true
	}

	for k := KindEnum(1); k.IsValid(); k++ {
		if k.GoName() == name {
			return k, true
		}
	}

	return 0, false
}

// IsValid reports whether k is one of the ten defined kinds.
func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// GoName returns the predeclared Go type name of the kind (e.g. "uint8").
func (k KindEnum) GoName() string {
	if !k.IsValid() {
		return ""
	}

	return goNames[k]
}

func (k KindEnum) IsSigned() bool {
	switch k {
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsPointerWidth reports whether the kind's width follows the platform word size.
func (k KindEnum) IsPointerWidth() bool {
	return k == KindInt || k == KindUint
}

// Bits returns the width of the kind on the running platform, or 0 for an invalid kind.
func (k KindEnum) Bits() int {
	switch k {
	case KindInt, KindUint:
		return strconv.IntSize
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	default:
		return 0
	}
}

// MaxPortable returns the largest value the kind holds on every platform. int and uint
// are counted as 32 bits wide.
func (k KindEnum) MaxPortable() uint64 {
	bits := k.Bits()
	if k.IsPointerWidth() {
		bits = 32
	}

	if k.IsSigned() {
		bits--
	}

	if bits <= 0 {
		return 0
	}

	return math.MaxUint64 >> (64 - bits)
}
