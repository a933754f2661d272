// Package utils provee helpers de JSON y timestamps para Bridge.
package utils

import (
	"encoding/json"
	"strings"
)

// JSONToValue parsea JSON arbitrario: objeto, array o escalar.
//
// Example:
//
//	v, err := utils.JSONToValue([]byte(`[1,2,3]`))
//	if err == nil {
//	    fmt.Println(v) // => [1 2 3]
//	}
func JSONToValue(data []byte) (interface{}, error) {
	var result interface{}
	err := json.Unmarshal(data, &result)
	return result, err
}

// JSONToMap convierte JSON a map[string]interface{}.
//
// Útil para parsing de payloads JSON dinámicos.
//
// Example:
//
//	data := []byte(`{"action":"Buy","instrument":"NQ"}`)
//	m, err := utils.JSONToMap(data)
//	if err == nil {
//	    fmt.Println(m["action"]) // => "Buy"
//	}
func JSONToMap(data []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	err := json.Unmarshal(data, &result)
	return result, err
}

// MarshalJSON serializa cualquier valor a JSON.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// ToJSONString convierte cualquier valor a JSON string.
//
// En caso de error, retorna string vacío.
func ToJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// ExtractField extrae un campo de un map JSON.
//
// Soporta campos anidados con notación de punto.
//
// Example:
//
//	data := map[string]interface{}{
//	    "result": map[string]interface{}{
//	        "ticket": 123456,
//	    },
//	}
//	ticket := utils.ExtractField(data, "result.ticket")
func ExtractField(m map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = m

	for _, part := range parts {
		switch v := current.(type) {
		case map[string]interface{}:
			var ok bool
			current, ok = v[part]
			if !ok {
				return nil
			}
		default:
			return nil
		}
	}

	return current
}

// ExtractString es como ExtractField pero retorna string.
//
// Si el campo no existe o no es string, retorna "".
func ExtractString(m map[string]interface{}, path string) string {
	v := ExtractField(m, path)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// ExtractInt64 es como ExtractField pero retorna int64.
//
// Si el campo no existe o no es numérico, retorna 0.
func ExtractInt64(m map[string]interface{}, path string) int64 {
	v := ExtractField(m, path)
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	}
	return 0
}

// ExtractFloat64 es como ExtractField pero retorna float64.
func ExtractFloat64(m map[string]interface{}, path string) float64 {
	v := ExtractField(m, path)
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	}
	return 0
}
