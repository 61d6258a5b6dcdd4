package rosetta

// Severity expresses the severity level of a diagnostics record. Only Error
// records fail an operation.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "Error"
	}
	return "Warning"
}

// Category classifies a field-level issue.
type Category int

const (
	WrongType        Category = iota // JSON value present but of the wrong shape.
	ValueMissing                     // No value at the key path, or an empty slot on encode.
	ValidationFailed                 // A validator rejected the value.
	ConversionFailed                 // Shape matched but the converter could not produce a result.
)

// Code returns the stable machine-readable code of the category.
func (c Category) Code() string {
	switch c {
	case WrongType:
		return CodeWrongType
	case ValueMissing:
		return CodeValueMissing
	case ValidationFailed:
		return CodeValidationFailed
	case ConversionFailed:
		return CodeConversionFailed
	default:
		return "unknown"
	}
}

func (c Category) String() string { return c.Code() }

// Direction is the direction of a mapping session.
type Direction int

const (
	DirectionDecode Direction = iota // JSON -> Go
	DirectionEncode                  // Go -> JSON
)

func (d Direction) String() string {
	if d == DirectionEncode {
		return "encode"
	}
	return "decode"
}

// Shape is the JSON shape a converter expects.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeNull
	ShapeBool
	ShapeNumber
	ShapeString
	ShapeArray
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeBool:
		return "bool"
	case ShapeNumber:
		return "number"
	case ShapeString:
		return "string"
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	default:
		return "any"
	}
}

// ShapeOf reports the JSON shape of a tree value. Go numeric kinds count as
// numbers so that hand-built trees behave like parsed ones.
func ShapeOf(v any) Shape {
	switch v.(type) {
	case nil:
		return ShapeNull
	case bool:
		return ShapeBool
	case string:
		return ShapeString
	case []any:
		return ShapeArray
	case map[string]any:
		return ShapeObject
	}
	if _, ok := asNumber(v); ok {
		return ShapeNumber
	}
	return ShapeAny
}
