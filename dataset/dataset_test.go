package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadnet/dataset"
	"github.com/katalvlaran/roadnet/geom"
	"github.com/katalvlaran/roadnet/network"
)

func TestCities(t *testing.T) {
	cities := dataset.Cities()
	require.Len(t, cities, 24)

	byID := map[string]network.Node{}
	for i, c := range cities {
		assert.Equal(t, network.City, c.Kind)
		if i > 0 {
			assert.Less(t, cities[i-1].ID, c.ID)
		}
		byID[c.ID] = c
	}
	assert.Equal(t, geom.Pt(1127, 286), byID["Caracas"].Pos)
	assert.Contains(t, byID, "Ciudad Bolívar")

	cities[0].ID = "mutated"
	assert.NotEqual(t, "mutated", dataset.Cities()[0].ID)
}

func TestParseErrors(t *testing.T) {
	_, err := dataset.Parse([]byte("cities:\n  - {id: a}\n  - {id: a}\n"))
	assert.ErrorIs(t, err, network.ErrDuplicateNode)

	_, err = dataset.Parse([]byte("cities:\n  - {x: 1}\n"))
	assert.ErrorIs(t, err, network.ErrEmptyNodeID)

	_, err = dataset.Parse([]byte("cities: ["))
	assert.Error(t, err)
}
