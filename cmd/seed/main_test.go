package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceForStaysInBand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		price := priceFor(rng)
		assert.GreaterOrEqual(t, price, int64(200))
		assert.LessOrEqual(t, price, int64(2000))
		assert.Zero(t, price%50)
	}
}

func TestBuildPhoneSpecs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	title, description, specs := buildPhone(rng, 3)
	require.NotEmpty(t, title)
	require.NotEmpty(t, description)

	for _, key := range []string{"brand", "processor", "ram", "storage", "camera", "battery", "screen"} {
		assert.Contains(t, specs, key)
	}
	assert.Contains(t, brands, specs["brand"])
}
