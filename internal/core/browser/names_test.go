package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayFallsBackToFile(t *testing.T) {
	n := DefaultNames()
	assert.Equal(t, "Blue Willow Catering", n.Display("email1.json"))
	assert.Equal(t, "mystery.json", n.Display("mystery.json"))
	assert.Len(t, n, 20)
}

func TestDefaultNamesIsACopy(t *testing.T) {
	n := DefaultNames()
	n["email1.json"] = "changed"
	assert.Equal(t, "Blue Willow Catering", DefaultNames().Display("email1.json"))
}

func TestLoadNamesMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")
	content := "email1.json: Willow Test Kitchen\nextra.json: Extra Supplies\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	n, err := LoadNames(path)
	require.NoError(t, err)
	assert.Equal(t, "Willow Test Kitchen", n.Display("email1.json"))
	assert.Equal(t, "Extra Supplies", n.Display("extra.json"))
	assert.Equal(t, "Green Basket", n.Display("email12.json"))
}

func TestLoadNamesEmptyPath(t *testing.T) {
	n, err := LoadNames("")
	require.NoError(t, err)
	assert.Equal(t, DefaultNames(), n)
}

func TestLoadNamesErrors(t *testing.T) {
	_, err := LoadNames(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))
	n, err := LoadNames(path)
	assert.Error(t, err)
	assert.Equal(t, "Green Basket", n.Display("email12.json"), "bundled table survives a bad file")
}

func TestEmptyLabelFallsBack(t *testing.T) {
	b := New(Names{"a.json": ""})
	assert.Equal(t, "a.json", b.DisplayName("a.json"))
}
