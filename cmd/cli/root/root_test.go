package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range GetRoot().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["equipment"], "equipment command registered")
	assert.True(t, names["migrate"], "migrate command registered")

	eq, _, err := GetRoot().Find([]string{"equipment", "export"})
	assert.NoError(t, err)
	assert.Equal(t, "export", eq.Name())
}
