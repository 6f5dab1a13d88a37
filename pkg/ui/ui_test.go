package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/palchukovsky/logreader/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinterText(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText)

	require.NoError(t, p.Errorf("Failed to open file %q.", "app.log"))
	assert.Equal(t, "Failed to open file \"app.log\".\n", buf.String())
	assert.Equal(t, "x", p.Style("Path", "x"))
	assert.Equal(t, "app.log", p.Subject("Path", "app.log"))
}

func TestPrinterAutoOnBufferIsText(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatAuto)
	assert.Equal(t, ui.FormatText, p.Format())
}

func TestPrinterAutoOnFileIsText(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, ui.FormatText, ui.NewPrinter(file, ui.FormatAuto).Format())
}

func TestPrinterTerminalStyles(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatTerminal)

	require.NoError(t, p.Println("Error", "boom"))
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "\x1b[")

	subject := p.Subject("Path", "app.log")
	assert.Contains(t, subject, "app.log")
	assert.NotEqual(t, "app.log", subject)

	// unknown styles render plain
	assert.Equal(t, "x", p.Style("NoSuchStyle", "x"))
}

func TestPrinterPrint(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatTerminal)

	require.NoError(t, p.Print("raw\n"))
	assert.Equal(t, "raw\n", buf.String())
}
