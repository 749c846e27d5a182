package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareMaps(t *testing.T) {
	from := map[string]int{"a": 1, "b": 2, "c": 3}
	to := map[string]int{"b": 2, "c": 30, "d": 4}

	extras, missing := CompareMaps(from, to)

	assert.Equal(t, map[string]int{"d": 4}, extras)
	assert.Equal(t, map[string]int{"a": 1}, missing)
}

func TestCompareMapsEmpty(t *testing.T) {
	extras, missing := CompareMaps(map[string]int{}, map[string]int{})

	assert.Empty(t, extras)
	assert.Empty(t, missing)
}

func TestPrettyPrint(t *testing.T) {
	type module struct {
		Name     string
		Identity string
	}

	s := PrettyPrint(module{Name: "CS-101", Identity: "abc-123"})
	assert.Contains(t, s, "\"Name\": \"CS-101\"")
	assert.Contains(t, s, "\"Identity\": \"abc-123\"")
}
