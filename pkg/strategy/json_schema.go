package strategy

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
)

var optionalIntType = reflect.TypeOf(optional.Option[int]{})

// ToJSONSchema reflects t into an inlined JSON schema string.
// Optional integers are described as plain integers.
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.Mapper = func(rt reflect.Type) *jsonschema.Schema {
		if rt == optionalIntType {
			return &jsonschema.Schema{Type: "integer", Minimum: json.Number("1")}
		}

		return nil
	}

	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
