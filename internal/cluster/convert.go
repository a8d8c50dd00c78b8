package cluster

import (
	"encoding/json"
	"math"

	structpb "github.com/golang/protobuf/ptypes/struct"
)

// FromValue converts a google.protobuf.Value into the plain Go value that
// encoding/json produces for the same JSON document. A nil value maps to nil.
func FromValue(v *structpb.Value) any {
	if v == nil {
		return nil
	}
	switch k := v.Kind.(type) {
	case *structpb.Value_NullValue:
		return nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return nil
		}
		return k.NumberValue
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_BoolValue:
		return k.BoolValue
	case *structpb.Value_ListValue:
		if k.ListValue == nil {
			return []any{}
		}
		out := make([]any, len(k.ListValue.Values))
		for i, item := range k.ListValue.Values {
			out[i] = FromValue(item)
		}
		return out
	case *structpb.Value_StructValue:
		if k.StructValue == nil {
			return map[string]any{}
		}
		out := make(map[string]any, len(k.StructValue.Fields))
		for name, field := range k.StructValue.Fields {
			out[name] = FromValue(field)
		}
		return out
	default:
		return nil
	}
}

// ToValue converts a JSON-compatible Go value into a google.protobuf.Value.
// Values that have no JSON representation (NaN, infinities) collapse to null.
func ToValue(v any) *structpb.Value {
	switch t := v.(type) {
	case nil:
		return nullValue()
	case bool:
		return &structpb.Value{Kind: &structpb.Value_BoolValue{BoolValue: t}}
	case string:
		return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: t}}
	case float64:
		return numberValue(t)
	case float32:
		return numberValue(float64(t))
	case int:
		return numberValue(float64(t))
	case int32:
		return numberValue(float64(t))
	case int64:
		return numberValue(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nullValue()
		}
		return numberValue(f)
	case []any:
		values := make([]*structpb.Value, len(t))
		for i, item := range t {
			values[i] = ToValue(item)
		}
		return &structpb.Value{Kind: &structpb.Value_ListValue{
			ListValue: &structpb.ListValue{Values: values},
		}}
	case map[string]any:
		fields := make(map[string]*structpb.Value, len(t))
		for name, field := range t {
			fields[name] = ToValue(field)
		}
		return &structpb.Value{Kind: &structpb.Value_StructValue{
			StructValue: &structpb.Struct{Fields: fields},
		}}
	default:
		// Structs and other marshalable values take the JSON detour.
		raw, err := json.Marshal(v)
		if err != nil {
			return nullValue()
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nullValue()
		}
		return ToValue(decoded)
	}
}

func nullValue() *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NullValue{NullValue: structpb.NullValue_NULL_VALUE}}
}

func numberValue(f float64) *structpb.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nullValue()
	}
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: f}}
}
