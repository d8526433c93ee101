package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellerDirectory_Lookup(t *testing.T) {
	dir := NewSellerDirectory([]Seller{
		{Key: "maria", Name: "Maria Lopez", Email: "maria@example.com"},
		{Key: "Juan", Name: "Juan Diaz", Email: "juan@example.com", Phone: "+54 11 5555 0000"},
	}, "juan")

	assert.Equal(t, "Maria Lopez", dir.Lookup("MARIA").Name)
	assert.Equal(t, "Juan Diaz", dir.Lookup("juan").Name)
	assert.Equal(t, "Juan Diaz", dir.Lookup("unknown").Name, "unknown keys resolve to the default seller")
	assert.Equal(t, "Juan Diaz", dir.Lookup("").Name)
}

func TestSellerDirectory_Defaults(t *testing.T) {
	t.Run("empty directory uses the agency seller", func(t *testing.T) {
		dir := NewSellerDirectory(nil, "")
		assert.Equal(t, DefaultSeller, dir.Lookup("anyone"))
	})

	t.Run("unknown default key falls back to first seller", func(t *testing.T) {
		dir := NewSellerDirectory([]Seller{{Key: "maria", Name: "Maria"}, {Key: "juan", Name: "Juan"}}, "pedro")
		assert.Equal(t, "Maria", dir.Lookup("pedro").Name)
	})
}

func TestParseSellers(t *testing.T) {
	sellers := ParseSellers("maria|Maria Lopez|maria@example.com|+54 11 1111; broken|only-two ;juan|Juan Diaz|juan@example.com;|x|y")

	require.Len(t, sellers, 2)
	assert.Equal(t, Seller{Key: "maria", Name: "Maria Lopez", Email: "maria@example.com", Phone: "+54 11 1111"}, sellers[0])
	assert.Equal(t, "juan", sellers[1].Key)
	assert.Empty(t, sellers[1].Phone)

	assert.Empty(t, ParseSellers(""))
}
