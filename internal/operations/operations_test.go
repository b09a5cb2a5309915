package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		want   Kind
		wantOK bool
	}{
		{"exact", "JoinGroup", JoinGroup, true},
		{"padded", "  GetMyGroups ", GetMyGroups, true},
		{"alias", "RegisterCar", CreateCar, true},
		{"prefix is not a match", "GetCa", Unknown, false},
		{"superstring is not a match", "GetCarsAndMore", Unknown, false},
		{"empty", "", Unknown, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseKind(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKindFromDocument(t *testing.T) {
	kind, ok := KindFromDocument("\n  mutation JoinGroup($input: JoinGroupInput!) { joinGroup(input: $input) { id } }")
	require.True(t, ok)
	assert.Equal(t, JoinGroup, kind)

	_, ok = KindFromDocument("{ me { id } }")
	assert.False(t, ok)
}

func TestDocumentsNameTheirKind(t *testing.T) {
	for _, k := range All() {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := KindFromDocument(k.Document())
			require.True(t, ok)
			assert.Equal(t, k, got)
			assert.NotEmpty(t, k.ResultFields())
		})
	}
}

func TestEmptyResponse(t *testing.T) {
	assert.Equal(t, Response{"myGroups": []any{}}, GetMyGroups.EmptyResponse())
	assert.Equal(t, Response{"groupEvents": []any{}}, GetGroupEvents.EmptyResponse())
	assert.Equal(t, Response{}, CreateGroup.EmptyResponse())
	assert.Equal(t, Response{}, Unknown.EmptyResponse())
}

func TestDecode_ConvertsJSONNumbers(t *testing.T) {
	vars := Variables{
		"input": map[string]any{
			"name":        "Prius",
			"year":        float64(2020),
			"pricePerDay": "5000",
		},
	}

	var got CreateCarVariables
	require.NoError(t, Decode(vars, &got))

	assert.Equal(t, "Prius", got.Input.Name)
	assert.Equal(t, 2020, got.Input.Year)
	assert.Equal(t, 5000, got.Input.PricePerDay)
}

func TestDecode_MissingPointerInputStaysNil(t *testing.T) {
	var got UpdateProfileVariables
	require.NoError(t, Decode(Variables{}, &got))
	assert.Nil(t, got.Input)
}

func TestNewVariables_WireShape(t *testing.T) {
	available := true
	vars, err := NewVariables(CarsVariables{Filter: &CarFilter{Available: &available}, Limit: 4})
	require.NoError(t, err)

	assert.Equal(t, Variables{
		"filter": map[string]any{"available": true},
		"limit":  float64(4),
	}, vars)

	var back CarsVariables
	require.NoError(t, Decode(vars, &back))
	require.NotNil(t, back.Filter)
	assert.True(t, *back.Filter.Available)
	assert.Equal(t, 4, back.Limit)
}
