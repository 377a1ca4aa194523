package cmd

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"

	"github.com/epdtools/insightviz/internal/pkg/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	return file
}

const trendsPayload = `{
	"name": "Weekly pageviews",
	"filters": {"insight": "TRENDS"},
	"result": [{"label": "views", "count": 132, "data": [10, 25, 18, 32, 47], "labels": ["Mon", "Tue", "Wed", "Thu", "Fri"]}]
}`

func TestInferMarkupFile(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"output.png", "output.html"},
		{"output.html", "output.html"},
		{"output", "output.html"},
		{"path/to/output.png", "path/to/output.html"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, inferMarkupFile(tt.input))
		})
	}
}

func TestInferImageFile(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"output.html", "output.png"},
		{"output.png", "output.png"},
		{"output", "output.png"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, inferImageFile(tt.input))
		})
	}
}

func TestSetConfigRefreshOverride(t *testing.T) {
	cfg := &config.Config{Refresh: 900}
	cli := &Command{
		Refresh: 120,
		Output:  "-",
		L:       newTestLogger(),
	}

	require.NoError(t, cli.setConfig(cfg))

	assert.Equal(t, 120, cfg.Refresh)
	assert.Equal(t, "-", cfg.Outputs.MarkupFile)
}

func TestSetConfigOutputFile(t *testing.T) {
	cfg := &config.Config{}
	cli := &Command{
		Output: "screen.png",
		Png:    true,
		L:      newTestLogger(),
	}

	require.NoError(t, cli.setConfig(cfg))

	assert.Equal(t, "screen.html", cfg.Outputs.MarkupFile)
	assert.Equal(t, "screen.png", cfg.Outputs.PngFile)
}

func TestSetConfigTempMarkup(t *testing.T) {
	cfg := &config.Config{
		Outputs: config.Output{
			PngFile: "output.png",
		},
	}
	cli := &Command{
		L: newTestLogger(),
	}

	require.NoError(t, cli.setConfig(cfg))

	assert.True(t, cfg.Outputs.IsTemp)
	assert.True(t, strings.Contains(cfg.Outputs.MarkupFile, "insightviz"),
		"expected temp file name to contain 'insightviz', got %q", cfg.Outputs.MarkupFile)

	os.Remove(cfg.Outputs.MarkupFile)
}

func TestPrepareConfigMissingFileFallsBack(t *testing.T) {
	cli := &Command{
		Config: "/nonexistent/config.yaml",
		Output: "-",
		L:      newTestLogger(),
	}

	cfg, cleanup, err := cli.prepareConfig()
	require.NoError(t, err)
	defer cleanup()

	// embedded defaults take over when there is no config file
	assert.Equal(t, 900, cfg.Refresh)
}

func TestPrepareConfigInvalidFile(t *testing.T) {
	cfgFile := writeTestFile(t, "config.yaml", "refresh: 1")

	cli := &Command{
		Config: cfgFile,
		L:      newTestLogger(),
	}

	_, _, err := cli.prepareConfig()
	require.Error(t, err)
}

func TestExecuteMarkupOutput(t *testing.T) {
	payloadFile := writeTestFile(t, "insight.json", trendsPayload)
	outFile := filepath.Join(t.TempDir(), "screen.html")

	cli := &Command{
		Config: "/nonexistent/config.yaml",
		Output: outFile,
		L:      newTestLogger(),
	}

	require.NoError(t, cli.Execute(payloadFile))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Weekly pageviews")
	assert.Contains(t, string(content), "<polyline")
}

func TestExecuteHTMLInput(t *testing.T) {
	page := `<html><head><script id="posthog-app-context" type="application/json">` +
		trendsPayload + `</script></head></html>`
	payloadFile := writeTestFile(t, "insight.html", page)
	outFile := filepath.Join(t.TempDir(), "screen.html")

	cli := &Command{
		Config: "/nonexistent/config.yaml",
		Output: outFile,
		IsHTML: true,
		L:      newTestLogger(),
	}

	require.NoError(t, cli.Execute(payloadFile))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Weekly pageviews")
}

func TestExecuteMissingInputRendersErrorScreen(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "screen.html")

	cli := &Command{
		Config: "/nonexistent/config.yaml",
		Output: outFile,
		L:      newTestLogger(),
	}

	// an unreadable payload still produces a full error screen for the device
	require.NoError(t, cli.Execute("/nonexistent/insight.json"))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Could not load insight data")
}

func TestExecuteScreens(t *testing.T) {
	payloadFile := writeTestFile(t, "insight.json", trendsPayload)
	outFile := filepath.Join(t.TempDir(), "screens.json")

	cli := &Command{
		Config:  "/nonexistent/config.yaml",
		Output:  outFile,
		Screens: true,
		L:       newTestLogger(),
	}

	require.NoError(t, cli.Execute(payloadFile))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"markup_quadrant"`)
	assert.Contains(t, string(content), `"refresh_interval"`)
}

func TestExecuteSetupScreen(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "setup.html")

	cli := &Command{
		Config: "/nonexistent/config.yaml",
		Output: outFile,
		Setup:  true,
		L:      newTestLogger(),
	}

	require.NoError(t, cli.Execute())

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Setup required")
}

func TestExecutePreview(t *testing.T) {
	payloadFile := writeTestFile(t, "insight.json", trendsPayload)
	outFile := filepath.Join(t.TempDir(), "preview.html")

	cli := &Command{
		Config:  "/nonexistent/config.yaml",
		Output:  outFile,
		Preview: true,
		L:       newTestLogger(),
	}

	require.NoError(t, cli.Execute(payloadFile))

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "echarts")
}
