package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplant(t *testing.T) {
	values := `{"id": "p-17", "n": 4, "f": 2.5, "b": true, "o": {"x": 1}, "nil": null, "nested": "{id}", "empty": ""}`

	cases := []struct {
		template string
		expected string
	}{
		{"/patients/{id}", "/patients/p-17"},
		{"/patients/{id}/visits/{n}", "/patients/p-17/visits/4"},
		{"/ratio/{f}", "/ratio/2.5"},
		{"/missing/{nope}", "/missing/{nope}"},
		{"/bool/{b}", "/bool/{b}"},
		{"/object/{o}", "/object/{o}"},
		{"/null/{nil}", "/null/{nil}"},
		{"/once/{nested}", "/once/{id}"},
		{"/empty/{empty}/x", "/empty//x"},
		{"/{id}{id}", "/p-17p-17"},
		{"/braces/{{id}}", "/braces/{p-17}"},
		{"/unclosed/{id", "/unclosed/{id"},
		{"/{}", "/{}"},
		{"", ""},
	}

	params := testParams(t, values)

	for _, c := range cases {
		assert.Equal(t, c.expected, Supplant(c.template, params), c.template)
	}
}

func TestSupplant_noPlaceholders(t *testing.T) {
	params := testParams(t, `{"a": "1"}`)

	for _, template := range []string{"/", "/plain/path", "/a?b=c", "no-slash"} {
		assert.Equal(t, template, Supplant(template, params))
	}
}

func TestSupplant_noValues(t *testing.T) {
	assert.Equal(t, "/patients/{id}", Supplant("/patients/{id}", nil))
}
