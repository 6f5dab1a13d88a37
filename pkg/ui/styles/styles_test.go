package styles_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/palchukovsky/logreader/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	lipgloss.SetDefaultRenderer(r)
	os.Exit(m.Run())
}

func TestEmbeddedStylesDefineEveryName(t *testing.T) {
	for _, name := range styles.Names {
		t.Run(name, func(t *testing.T) {
			_, exists := styles.StyleRegistry[name]
			assert.True(t, exists, "Style %s should exist in registry", name)
		})
	}
}

func TestGetStyle(t *testing.T) {
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.False(t, styles.GetStyle("Mask").GetBold())
	assert.True(t, styles.GetStyle("Path").GetItalic())

	missing := styles.GetStyle("NoSuchStyle")
	assert.Equal(t, "plain", missing.Render("plain"))
}

func TestMergeStyles(t *testing.T) {
	merged := styles.MergeStyles("Path", "Error")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetItalic())
	assert.Equal(t, styles.GetStyle("Path").GetForeground(), merged.GetForeground())
}

func TestRenderAppliesStyle(t *testing.T) {
	out := styles.GetStyle("Error").Render("boom")
	assert.Contains(t, out, "boom")
	assert.NotEqual(t, "boom", out)
}

func TestLoadStylesFromFile(t *testing.T) {
	t.Cleanup(func() {
		data, err := os.ReadFile("styles.yaml")
		require.NoError(t, err)
		require.NoError(t, styles.LoadStylesFromData(data))
	})

	path := filepath.Join(t.TempDir(), "styles.yaml")
	content := "colors:\n  c:\n    light: \"#000000\"\n    dark: \"#FFFFFF\"\nstyles:\n  Only:\n    italic: true\n    foreground: c\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, styles.LoadStyles(path))
	assert.True(t, styles.GetStyle("Only").GetItalic())
	_, exists := styles.StyleRegistry["Error"]
	assert.False(t, exists)
}

func TestLoadStylesErrors(t *testing.T) {
	assert.Error(t, styles.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles:\n  Bad:\n    foreground: nowhere\n")))

	// failed loads leave the registry alone
	assert.True(t, styles.GetStyle("Error").GetBold())
}
