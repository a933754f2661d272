package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONToValue(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"a":1}`},
		{name: "array", body: `[1,2,3]`},
		{name: "number", body: `42`},
		{name: "string", body: `"text"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONToValue([]byte(tt.body))
			require.NoError(t, err)
		})
	}

	_, err := JSONToValue([]byte(`{broken`))
	require.Error(t, err)
}

func TestExtractFieldNestedPath(t *testing.T) {
	data := map[string]interface{}{
		"result": map[string]interface{}{
			"ticket": float64(123456),
		},
		"status": "filled",
	}

	assert.Equal(t, "filled", ExtractString(data, "status"))
	assert.Equal(t, int64(123456), ExtractInt64(data, "result.ticket"))
	assert.Equal(t, float64(123456), ExtractFloat64(data, "result.ticket"))
	assert.Nil(t, ExtractField(data, "result.missing"))
	assert.Nil(t, ExtractField(data, "status.nested"))
}

func TestToJSONString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ToJSONString(map[string]interface{}{"a": 1}))
	assert.Equal(t, "", ToJSONString(make(chan int)), "valores no serializables retornan vacío")

	data, err := MarshalJSON([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, string(data))
}
