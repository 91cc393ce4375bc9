package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeDLC(t *testing.T) {
	dlc := []string{
		"The Witcher 3 Expansion Pass",
		"Cities: Skylines - Content Pack One",
		"DOOM Eternal OST Edition",
		"Hades Season Pass",
		"Ori Soundtrack Bundle",
	}
	for _, name := range dlc {
		assert.True(t, LooksLikeDLC(name), name)
	}

	games := []string{
		"Portal 2",
		"The Witcher 3: Wild Hunt",
		"Outlast",
		"Express Raider",
	}
	for _, name := range games {
		assert.False(t, LooksLikeDLC(name), name)
	}
}
