package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/pkg/normalize"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Café":            "cafe",
		"AZÚCAR Refinada": "azucar refinada",
		"Ñame":            "name",
		"plain ascii":     "plain ascii",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Fold(in), "entrada %q", in)
	}
}
