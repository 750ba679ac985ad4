package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDecode(t *testing.T) {
	var p struct {
		Name  Optional[string] `json:"name"`
		Bio   Optional[string] `json:"bio"`
		Order Optional[int]    `json:"sort_order"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","bio":null}`), &p))

	assert.True(t, p.Name.Present())
	assert.Equal(t, "x", p.Name.Value)
	assert.Equal(t, "x", *p.Name.Ptr())

	assert.True(t, p.Bio.Set)
	assert.True(t, p.Bio.Null)
	assert.False(t, p.Bio.Present())
	assert.Nil(t, p.Bio.Ptr())

	assert.False(t, p.Order.Set)
	assert.False(t, p.Order.Present())
}

func TestOptionalZeroValueIsPresent(t *testing.T) {
	var p struct {
		Active Optional[bool] `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"is_active":false}`), &p))
	assert.True(t, p.Active.Present())
	assert.False(t, p.Active.Value)
}

func TestOptionalTypeMismatch(t *testing.T) {
	var p struct {
		Order Optional[int] `json:"sort_order"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"sort_order":"first"}`), &p))
}

func TestOptionalEncode(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}{Some("v"), Null[string](), Optional[string]{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"v","b":null,"c":null}`, string(out))
}
