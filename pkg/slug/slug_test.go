package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/afrispot-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Entrées":                 "entrees",
		"Entrées & Desserts":      "entrees-desserts",
		"  Spécialités du Chef  ": "specialites-du-chef",
		"Bœuf braisé":             "boeuf-braise",
		"Boissons / Jus 100%":     "boissons-jus-100",
		"---":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "entrada %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("accompagnements"))
	assert.True(t, slug.Valid("plats-du-jour"))
	assert.False(t, slug.Valid("Plats du jour"))
	assert.False(t, slug.Valid("-desserts"))
	assert.False(t, slug.Valid(""))
}
