package primitive_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"unchecked-convert/primitive"
)

func Example() {
	for _, name := range []string{"uint8", "byte", "int", "rune", "u8", "Uint8", "float64"} {
		k, ok := primitive.Lookup(name)
		fmt.Println(name, k, ok)
	}
	// Output:
	// uint8 KindUint8 true
	// byte KindUint8 true
	// int KindInt true
	// rune KindInt32 true
	// u8 KindEnum(0) false
	// Uint8 KindEnum(0) false
	// float64 KindEnum(0) false
}

func TestLookup_AllKinds(t *testing.T) {
	t.Parallel()

	seen := 0
	for k := primitive.KindEnum(1); int(k) < primitive.KindTotal; k++ {
		got, ok := primitive.Lookup(k.GoName())
		assert.True(t, ok, k.String())
		assert.Equal(t, k, got)
		seen++
	}

	assert.Equal(t, 10, seen)
}

func TestKindEnum_Signedness(t *testing.T) {
	t.Parallel()

	assert.True(t, primitive.KindInt16.IsSigned())
	assert.True(t, primitive.KindInt.IsSigned())
	assert.False(t, primitive.KindUint.IsSigned())
	assert.False(t, primitive.KindEnum(0).IsSigned())
	assert.True(t, primitive.KindUint.IsPointerWidth())
	assert.False(t, primitive.KindUint64.IsPointerWidth())
}

func TestKindEnum_Bits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, primitive.KindInt8.Bits())
	assert.Equal(t, 16, primitive.KindUint16.Bits())
	assert.Equal(t, 32, primitive.KindInt32.Bits())
	assert.Equal(t, 64, primitive.KindUint64.Bits())
	assert.Contains(t, []int{32, 64}, primitive.KindInt.Bits())
	assert.Equal(t, primitive.KindInt.Bits(), primitive.KindUint.Bits())

	assert.Zero(t, primitive.KindEnum(0).Bits())
}

func TestKindEnum_MaxPortable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind primitive.KindEnum
		want uint64
	}{
		{primitive.KindUint8, math.MaxUint8},
		{primitive.KindInt8, math.MaxInt8},
		{primitive.KindUint16, math.MaxUint16},
		{primitive.KindInt32, math.MaxInt32},
		{primitive.KindUint64, math.MaxUint64},
		{primitive.KindInt64, math.MaxInt64},
		{primitive.KindUint, math.MaxUint32},
		{primitive.KindInt, math.MaxInt32},
		{primitive.KindEnum(0), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.MaxPortable(), tt.kind.String())
	}
}

func TestKindEnum_GoName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uint8", primitive.KindUint8.GoName())
	assert.Equal(t, "int", primitive.KindInt.GoName())
	assert.Empty(t, primitive.KindEnum(0).GoName())
	assert.Empty(t, primitive.KindEnum(primitive.KindTotal).GoName())
	assert.False(t, primitive.KindEnum(0).IsValid())
}
