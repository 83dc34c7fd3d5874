package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createThing struct {
	Name     *string `json:"name" validate:"required,min=1,max=10"`
	Secret   *string `json:"secret" validate:"required,min=8,maxbytes=72"`
	Quantity *int64  `json:"quantity" validate:"required"`
}

type patchThing struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=10"`
	Secret   *string `json:"secret" validate:"omitempty,min=8,maxbytes=72"`
	Quantity *int64  `json:"quantity"`
}

func detailOf(t *testing.T, err error) Detail {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	return se.Detail
}

func TestValidateCreateOK(t *testing.T) {
	got, err := Validate[createThing]([]byte(`{"name":"box","secret":"12345678","quantity":3,"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, "box", *got.Name)
	assert.Equal(t, "12345678", *got.Secret)
	assert.Equal(t, int64(3), *got.Quantity)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Detail
	}{
		{
			name: "empty body",
			body: ``,
			want: Detail{Type: "json_invalid", Loc: []string{}, Msg: "Invalid JSON"},
		},
		{
			name: "broken json",
			body: `{"name":`,
			want: Detail{Type: "json_invalid", Loc: []string{}, Msg: "Invalid JSON"},
		},
		{
			name: "array instead of object",
			body: `[1,2]`,
			want: Detail{Type: "model_type", Loc: []string{}, Msg: "Input should be a valid dictionary or object to extract fields from"},
		},
		{
			name: "null body",
			body: `null`,
			want: Detail{Type: "model_type", Loc: []string{}, Msg: "Input should be a valid dictionary or object to extract fields from"},
		},
		{
			name: "missing required field",
			body: `{"secret":"12345678","quantity":1}`,
			want: Detail{Type: "missing", Loc: []string{"name"}, Msg: "Field required"},
		},
		{
			name: "short secret",
			body: `{"name":"box","secret":"1234567","quantity":1}`,
			want: Detail{Type: "value_error", Loc: []string{"secret"}, Msg: "Minimal length of secret is 8"},
		},
		{
			name: "long name",
			body: `{"name":"abcdefghijk","secret":"12345678","quantity":1}`,
			want: Detail{Type: "value_error", Loc: []string{"name"}, Msg: "Maximal length of name is 10"},
		},
		{
			name: "empty name",
			body: `{"name":"","secret":"12345678","quantity":1}`,
			want: Detail{Type: "value_error", Loc: []string{"name"}, Msg: "Minimal length of name is 1"},
		},
		{
			name: "secret over bcrypt limit",
			body: `{"name":"box","secret":"` + strings.Repeat("ж", 40) + `","quantity":1}`,
			want: Detail{Type: "value_error", Loc: []string{"secret"}, Msg: "Maximal size of secret is 72 bytes"},
		},
		{
			name: "number where string expected",
			body: `{"name":5,"secret":"12345678","quantity":1}`,
			want: Detail{Type: "string_type", Loc: []string{"name"}, Msg: "Input should be a valid string"},
		},
		{
			name: "string where integer expected",
			body: `{"name":"box","secret":"12345678","quantity":"one"}`,
			want: Detail{Type: "int_type", Loc: []string{"quantity"}, Msg: "Input should be a valid integer"},
		},
		{
			name: "fraction where integer expected",
			body: `{"name":"box","secret":"12345678","quantity":1.5}`,
			want: Detail{Type: "int_type", Loc: []string{"quantity"}, Msg: "Input should be a valid integer"},
		},
		{
			name: "first failing field wins",
			body: `{"name":"","secret":"1"}`,
			want: Detail{Type: "value_error", Loc: []string{"name"}, Msg: "Minimal length of name is 1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate[createThing]([]byte(tt.body))
			assert.Equal(t, tt.want, detailOf(t, err))
		})
	}
}

func TestValidatePatchIsSparse(t *testing.T) {
	got, err := Validate[patchThing]([]byte(`{"name":"lid"}`))
	require.NoError(t, err)
	assert.Equal(t, "lid", *got.Name)
	assert.Nil(t, got.Secret)
	assert.Nil(t, got.Quantity)

	empty, err := Validate[patchThing]([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, patchThing{}, *empty)
}

func TestValidatePatchKeepsConstraints(t *testing.T) {
	_, err := Validate[patchThing]([]byte(`{"secret":"short"}`))
	assert.Equal(t, "Minimal length of secret is 8", detailOf(t, err).Msg)
}

func TestValidatePatchRejectsNull(t *testing.T) {
	_, err := Validate[patchThing]([]byte(`{"quantity":null}`))
	assert.Equal(t, Detail{Type: "int_type", Loc: []string{"quantity"}, Msg: "Input should be a valid integer"}, detailOf(t, err))
}

func TestErrorMessage(t *testing.T) {
	_, err := Validate[createThing]([]byte(`{"name":"box","secret":"x","quantity":1}`))
	assert.EqualError(t, err, "Minimal length of secret is 8")
}

func TestValidateRejectsNonPointerFields(t *testing.T) {
	type bad struct {
		Name string `json:"name"`
	}
	assert.Panics(t, func() { _, _ = Validate[bad]([]byte(`{}`)) })
}
