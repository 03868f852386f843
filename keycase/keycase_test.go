package keycase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelizeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "snake keys",
			in:   map[string]any{"created_at": "x", "user_id": 1},
			want: map[string]any{"createdAt": "x", "userId": 1},
		},
		{
			name: "kebab and spaced keys",
			in:   map[string]any{"street-address": "a", "zip code": "b"},
			want: map[string]any{"streetAddress": "a", "zipCode": "b"},
		},
		{
			name: "acronym collapses to one lowercase token",
			in:   map[string]any{"ID": 1, "HTTPS": true, "DUNs": "x", "VATs": "y"},
			want: map[string]any{"id": 1, "https": true, "duns": "x", "vats": "y"},
		},
		{
			name: "mixed-case acronym prefix splits normally",
			in:   map[string]any{"HTTPServer": 1},
			want: map[string]any{"httpServer": 1},
		},
		{
			name: "already camel is untouched",
			in:   map[string]any{"createdAt": "x"},
			want: map[string]any{"createdAt": "x"},
		},
		{
			name: "scalars pass through",
			in:   "plain",
			want: "plain",
		},
		{
			name: "nil passes through",
			in:   nil,
			want: nil,
		},
		{
			name: "sequences map element-wise",
			in:   []any{map[string]any{"a_b": 1}, "x", 2},
			want: []any{map[string]any{"aB": 1}, "x", 2},
		},
		{
			name: "nested documents",
			in: map[string]any{
				"user_detail": map[string]any{
					"home_addresses": []any{
						map[string]any{"street_name": "Main", "ID": 7},
					},
				},
			},
			want: map[string]any{
				"userDetail": map[string]any{
					"homeAddresses": []any{
						map[string]any{"streetName": "Main", "id": 7},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelizeKeys(tt.in))
		})
	}
}

func TestCamelizeKeysIdempotent(t *testing.T) {
	in := map[string]any{
		"created_at": "x",
		"DUNs":       1,
		"nested_doc": []any{map[string]any{"some_key": "v"}},
	}
	once := CamelizeKeys(in)
	twice := CamelizeKeys(once)
	assert.Equal(t, once, twice)
}

func TestCamelizeKeysDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"some_key": map[string]any{"inner_key": 1}}
	_ = CamelizeKeys(in)
	assert.Contains(t, in, "some_key")
	assert.Contains(t, in["some_key"], "inner_key")
}
