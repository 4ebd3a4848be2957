package reflectx

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ValueOf converts a string representation of a value to a reflect.Value of the specified type.
// It attempts to unmarshal the string into the appropriate type using various methods such as JSON,
// proto.Message, encoding.TextUnmarshaler and encoding.BinaryUnmarshaler.
//
// The function follows these steps:
//  1. Strings, pointers to strings and empty interfaces take the raw text as is.
//  2. Valid JSON is unmarshaled with protojson for proto messages and encoding/json otherwise.
//     Numbers, booleans and null are valid JSON too.
//  3. encoding.TextUnmarshaler, proto binary and encoding.BinaryUnmarshaler are tried in turn.
//  4. If the decoded value implements Validator, Validate is called.
//
// An error wrapping ErrInvalidArgumentValue is returned when nothing succeeds.
func ValueOf(s string, t reflect.Type) (reflect.Value, error) {
	raw := []byte(s)
	pointer := t.Kind() == reflect.Pointer

	var (
		argValue reflect.Value
		outValue reflect.Value
	)
	if pointer {
		argValue = reflect.New(t.Elem())
		outValue = argValue
	} else {
		argValue = reflect.New(t)
		outValue = argValue.Elem()
	}

	switch {
	case t.Kind() == reflect.String:
		outValue.SetString(s)
		return outValue, nil
	case pointer && t.Elem().Kind() == reflect.String:
		argValue.Elem().SetString(s)
		return outValue, nil
	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		outValue.Set(reflect.ValueOf(s))
		return outValue, nil
	}

	decoded := decode(raw, argValue.Interface())
	if !decoded {
		return outValue, fmt.Errorf("%w: '%s': for type '%s'", ErrInvalidArgumentValue, s, t.String())
	}

	if err := Validate(outValue); err != nil {
		return outValue, fmt.Errorf("%w: '%s': %w", ErrInvalidArgumentValue, s, err)
	}

	return outValue, nil
}

func decode(raw []byte, arg any) bool {
	if json.Valid(raw) {
		var err error
		if message, ok := arg.(proto.Message); ok {
			err = protojson.Unmarshal(raw, message)
		} else {
			err = json.Unmarshal(raw, arg)
		}
		if err == nil {
			return true
		}
	}

	if unmarshaler, ok := arg.(encoding.TextUnmarshaler); ok {
		if err := unmarshaler.UnmarshalText(raw); err == nil {
			return true
		}
	}

	if message, ok := arg.(proto.Message); ok {
		if err := proto.Unmarshal(raw, message); err == nil {
			return true
		}
	}

	if unmarshaler, ok := arg.(encoding.BinaryUnmarshaler); ok {
		if err := unmarshaler.UnmarshalBinary(raw); err == nil {
			return true
		}
	}

	return false
}

// ValuesOf decodes args positionally into the given types.
func ValuesOf(args []string, types []reflect.Type) ([]reflect.Value, error) {
	if len(args) != len(types) {
		return nil, fmt.Errorf(
			"%w: found %d but expected %d",
			ErrIncorrectArgumentCount,
			len(args),
			len(types),
		)
	}

	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := ValueOf(arg, types[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d", err, i)
		}
		values[i] = v
	}

	return values, nil
}
