package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/joyeria-pos/pkg/search"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "anillo corazon", search.Fold("Anillo Corazón"))
	assert.Equal(t, "cadena espanola n", search.Fold("  Cadena Española Ñ "))
}

func TestFold_TextoSinDiacriticos_Intacto(t *testing.T) {
	assert.Equal(t, "dije 18k", search.Fold("Dije 18k"))
}

func TestFold_Vacio(t *testing.T) {
	assert.Equal(t, "", search.Fold(""))
}
