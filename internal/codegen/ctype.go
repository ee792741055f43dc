package codegen

import "swcgen/internal/model"

// FallbackCType is used for any base type outside the table.
const FallbackCType = "uint8"

// cTypes maps every base type to its platform type name, declared in
// Std_Types.h, and the C99 type it is defined as.
var cTypes = map[model.BaseType]struct{ name, c99 string }{
	model.Uint8:   {"uint8", "uint8_t"},
	model.Uint16:  {"uint16", "uint16_t"},
	model.Uint32:  {"uint32", "uint32_t"},
	model.Uint64:  {"uint64", "uint64_t"},
	model.Int8:    {"int8", "int8_t"},
	model.Int16:   {"int16", "int16_t"},
	model.Int32:   {"int32", "int32_t"},
	model.Int64:   {"int64", "int64_t"},
	model.Float32: {"float32", "float"},
	model.Float64: {"float64", "double"},
	model.Boolean: {"boolean", "uint8_t"},
}

// CType returns the platform type name for b. Unrecognized base types map
// to FallbackCType.
func CType(b model.BaseType) string {
	if t, ok := cTypes[b]; ok {
		return t.name
	}
	return FallbackCType
}

type stdType struct{ Name, C99 string }

// stdTypes lists the Std_Types.h typedefs in base-type declaration order.
func stdTypes() []stdType {
	out := make([]stdType, 0, len(model.BaseTypes))
	for _, b := range model.BaseTypes {
		t := cTypes[b]
		out = append(out, stdType{Name: t.name, C99: t.c99})
	}
	return out
}
