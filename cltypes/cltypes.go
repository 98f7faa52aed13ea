// Package cltypes defines the host-visible OpenCL scalar types and their Go
// counterparts, used for typed buffer transfers in the opencl package.
package cltypes

import (
	"reflect"

	"github.com/x448/float16"
)

//go:generate go tool enumer -type=DataType cltypes.go

// DataType enumerates the OpenCL scalar types that can cross the host
// boundary. Half maps to github.com/x448/float16.Float16 on the Go side.
type DataType int32

const (
	Invalid DataType = iota
	Char             // cl_char
	UChar            // cl_uchar
	Short            // cl_short
	UShort           // cl_ushort
	Int              // cl_int
	UInt             // cl_uint
	Long             // cl_long
	ULong            // cl_ulong
	Half             // cl_half
	Float            // cl_float
	Double           // cl_double
)

// Scalar is the constraint of Go types that can be transferred to and from
// device memory as-is.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | float16.Float16
}

// Size returns the size in bytes of one scalar of the data type, or 0 for
// Invalid.
func (dt DataType) Size() int {
	switch dt {
	case Char, UChar:
		return 1
	case Short, UShort, Half:
		return 2
	case Int, UInt, Float:
		return 4
	case Long, ULong, Double:
		return 8
	}
	return 0
}

// GoType returns the reflect.Type of the Go counterpart of the data type,
// or nil for Invalid.
func (dt DataType) GoType() reflect.Type {
	switch dt {
	case Char:
		return reflect.TypeOf(int8(0))
	case UChar:
		return reflect.TypeOf(uint8(0))
	case Short:
		return reflect.TypeOf(int16(0))
	case UShort:
		return reflect.TypeOf(uint16(0))
	case Int:
		return reflect.TypeOf(int32(0))
	case UInt:
		return reflect.TypeOf(uint32(0))
	case Long:
		return reflect.TypeOf(int64(0))
	case ULong:
		return reflect.TypeOf(uint64(0))
	case Half:
		return reflect.TypeOf(float16.Float16(0))
	case Float:
		return reflect.TypeOf(float32(0))
	case Double:
		return reflect.TypeOf(float64(0))
	}
	return nil
}

// DataTypeOf returns the DataType corresponding to the Go scalar type T.
func DataTypeOf[T Scalar]() DataType {
	var v T
	switch any(v).(type) {
	case int8:
		return Char
	case uint8:
		return UChar
	case int16:
		return Short
	case uint16:
		return UShort
	case int32:
		return Int
	case uint32:
		return UInt
	case int64:
		return Long
	case uint64:
		return ULong
	case float16.Float16:
		return Half
	case float32:
		return Float
	case float64:
		return Double
	}
	return Invalid
}
