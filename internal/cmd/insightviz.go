// Package cmd owns the implementation details of the CLI command.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/epdtools/insightviz/internal/pkg/chart"
	"github.com/epdtools/insightviz/internal/pkg/config"
	"github.com/epdtools/insightviz/internal/pkg/extract"
	"github.com/epdtools/insightviz/internal/pkg/fetch"
	"github.com/epdtools/insightviz/internal/pkg/image"
	"github.com/epdtools/insightviz/internal/pkg/insight"
	"github.com/epdtools/insightviz/internal/pkg/model"
	"github.com/epdtools/insightviz/internal/pkg/preview"
)

// Command holds command line flags and executes the insightviz command.
//
// It knows how to load a configuration file in a [config.Config] and manage
// CLI flag configuration overrides.
//
// The main purpose of this package is to deal with io's: opening and closing
// files, fetching the payload. Everything downstream deals with values and
// streams.
type Command struct {
	Config  string
	Output  string
	URL     string
	IsHTML  bool
	Png     bool
	Preview bool
	Report  bool
	Screens bool
	Setup   bool
	Refresh int
	L       *slog.Logger
}

// NewCommand builds a CLI command with registered flags and an injected logger.
func NewCommand() *Command {
	cli := &Command{
		L: slog.Default().With(slog.String("module", "main")),
	}

	cli.registerFlags()

	return cli
}

// Parse command line flags and arguments.
func (*Command) Parse() error {
	return flag.CommandLine.Parse(os.Args[1:])
}

// Fatalf logs an error message then exits. The output is spewed on both stderr and the structured logger output.
func (c *Command) Fatalf(err error) {
	c.L.Error(err.Error())
	log.Fatalf("%v", err)
}

// Execute the CLI with flags and extra arguments.
//
// If no argument is passed, command line arguments (i.e. [os.Args]) are used.
func (c *Command) Execute(args ...string) error {
	if args == nil { // passing explicit args allows for testing Execute without altering [os.Args]
		args = c.args()
	}
	if len(args) == 0 && c.URL == "" { // no file, no URL: assume stdin
		args = append(args, "-")
	}

	cfg, cleanup, err := c.prepareConfig()
	if err != nil {
		return err
	}
	defer cleanup()

	composer := chart.New(
		chart.WithCanvasSize(cfg.Canvas.Width, cfg.Canvas.Height),
		chart.WithRefreshSeconds(cfg.Refresh),
		chart.WithMaxAxisLabels(cfg.Labels.Axis),
		chart.WithMaxLegendEntries(cfg.Labels.Legend),
		chart.WithMaxListEntries(cfg.Labels.List),
		chart.WithMaxLabelRunes(cfg.Labels.Runes),
	)

	if c.Setup {
		if c.Screens {
			return c.writeScreens(model.NewScreenSet(composer.Setup(), cfg.Refresh))
		}

		return c.writeMarkup(cfg, composer.Setup())
	}

	// 1. obtain the raw payload: fetched page, local file or stdin
	payload, err := c.loadPayload(args)
	if err != nil {
		// upstream failure: the device still gets a full-canvas error screen
		c.L.Warn("payload unavailable", slog.String("error", err.Error()))

		return c.writeMarkup(cfg, composer.Error("Could not load insight data"))
	}

	// 2. normalize to the canonical record
	rec := insight.New().Normalize(payload)

	if c.Report {
		return c.report(rec)
	}

	if c.Preview {
		return c.renderPreview(cfg, rec)
	}

	// 3. compose the screen and write it out, possibly with a PNG screenshot
	if c.Screens {
		return c.writeScreens(composer.Screens(rec))
	}

	return c.writeMarkup(cfg, composer.Compose(rec))
}

func (*Command) args() []string {
	return flag.CommandLine.Args()
}

func (c *Command) registerFlags() {
	defaults := Command{
		Config:  "insightviz.yaml",
		Output:  "-",
		URL:     "",
		IsHTML:  false,
		Png:     false,
		Preview: false,
		Report:  false,
		Screens: false,
		Setup:   false,
		Refresh: 0,
	}

	flag.StringVar(&c.Config, "config", defaults.Config, "config file")
	flag.StringVar(&c.Config, "c", defaults.Config, "config file (shorthand)")
	flag.StringVar(&c.Output, "output", defaults.Output, "file output or - for standard output")
	flag.StringVar(&c.Output, "o", defaults.Output, "file output or - for standard output (shorthand)")
	flag.StringVar(&c.URL, "url", defaults.URL, "fetch the payload from a shared insight page URL")
	flag.BoolVar(&c.IsHTML, "html", defaults.IsHTML, "treat the input file as an HTML page with an embedded payload")
	flag.BoolVar(&c.Png, "png", defaults.Png, "enable PNG screenshot output")
	flag.BoolVar(&c.Preview, "preview", defaults.Preview, "render an interactive preview page instead of device markup")
	flag.BoolVar(&c.Report, "r", defaults.Report, "report the canonical record only, no rendering (shorthand)")
	flag.BoolVar(&c.Report, "report", defaults.Report, "report the canonical record only, no rendering")
	flag.BoolVar(&c.Screens, "screens", defaults.Screens, "emit the four layout slots as JSON instead of bare markup")
	flag.BoolVar(&c.Setup, "setup", defaults.Setup, "render the setup screen for an unconfigured device, ignoring any input")
	flag.IntVar(&c.Refresh, "refresh", defaults.Refresh, "refresh interval override, in seconds")
}

func (c *Command) prepareConfig() (cfg *config.Config, cleanup func(), err error) {
	cfg, err = config.Load(c.Config)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}

		// no config file is fine: run on embedded defaults
		cfg, err = config.LoadDefaults()
		if err != nil {
			return nil, nil, fmt.Errorf("loading default config: %w", err)
		}
	}

	if err = c.setConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("preparing config: %w", err)
	}

	if cfg.Outputs.IsTemp && !c.Report && !c.Preview {
		cleanup = func() {
			_ = os.Remove(cfg.Outputs.MarkupFile)
		}

		return cfg, cleanup, err
	}

	return cfg, func() {}, err
}

// apply CLI flags overrides to YAML config.
func (c *Command) setConfig(cfg *config.Config) error {
	if c.Refresh > 0 {
		cfg.Refresh = c.Refresh
	}

	if c.Output != "" && c.Output != "-" {
		cfg.Outputs.MarkupFile = inferMarkupFile(c.Output)
		if cfg.Outputs.PngFile == "" && c.Png {
			cfg.Outputs.PngFile = inferImageFile(cfg.Outputs.MarkupFile)
		}
	}

	if c.Report || c.Preview {
		return nil
	}

	switch {
	case cfg.Outputs.MarkupFile == "" && cfg.Outputs.PngFile == "":
		c.L.Info("output sent to standard output as markup, no PNG image rendered")
		if c.Png {
			c.L.Info("set an output file to render a PNG image")
		}
		cfg.Outputs.MarkupFile = "-"
	case cfg.Outputs.MarkupFile == "" && cfg.Outputs.PngFile != "":
		c.L.Info("markup generated as a temporary file to produce PNG")
		tmp, err := os.CreateTemp("", "insightviz.*.html")
		if err != nil {
			return err
		}
		cfg.Outputs.MarkupFile = tmp.Name()
		cfg.Outputs.IsTemp = true
		_ = tmp.Close()
	}

	return nil
}

// loadPayload resolves the raw payload from the URL flag or the first input
// argument ("-" reads stdin). A plain JSON input may be single- or
// double-encoded; an HTML input goes through the embedded-blob extractor.
func (c *Command) loadPayload(args []string) (map[string]any, error) {
	if c.URL != "" {
		return fetch.New().Fetch(context.Background(), c.URL)
	}

	file := args[0]
	reader := os.Stdin
	if file != "-" {
		var err error
		reader, err = os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("input file %q: %w", file, err)
		}
		defer func() {
			_ = reader.Close()
		}()
	}

	if c.IsHTML {
		return extract.FromHTML(reader)
	}

	blob, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return extract.DecodePayload(blob)
}

// report dumps the canonical record, as JSON on stdout and spewed on the
// structured logger at debug level.
func (c *Command) report(rec model.Insight) error {
	c.L.Debug("canonical record", slog.String("dump", spew.Sdump(rec)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", " ")

	return enc.Encode(rec)
}

func (c *Command) renderPreview(_ *config.Config, rec model.Insight) error {
	w, closer, err := c.outputWriter("preview")
	if err != nil {
		return err
	}
	defer closer()

	page := preview.NewPage(rec.Title)
	page.AddInsight(rec)

	return page.Render(w)
}

func (c *Command) writeScreens(screens model.ScreenSet) error {
	w, closer, err := c.outputWriter("screens")
	if err != nil {
		return err
	}
	defer closer()

	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")

	return enc.Encode(screens)
}

func (c *Command) writeMarkup(cfg *config.Config, markup string) error {
	w, closer, err := getWriter(cfg.Outputs.MarkupFile, "markup")
	if err != nil {
		return err
	}

	if _, err := w.WriteString(markup); err != nil {
		closer()

		return fmt.Errorf("writing markup: %w", err)
	}

	closer()

	if cfg.Outputs.PngFile == "" {
		return nil
	}

	reader, readCloser, err := getReader(cfg.Outputs.MarkupFile, "markup")
	if err != nil {
		return err
	}
	defer readCloser()

	pngWriter, pngCloser, err := getWriter(cfg.Outputs.PngFile, "PNG")
	if err != nil {
		return err
	}
	defer pngCloser()

	r := image.New(
		image.WithWidth(cfg.Screenshot.Width),
		image.WithHeight(cfg.Screenshot.Height),
		image.WithSleep(cfg.Screenshot.SleepDuration()),
	)

	if err = r.Render(pngWriter, reader); err != nil {
		return fmt.Errorf("rendering image: %w", err)
	}

	return nil
}

func (c *Command) outputWriter(kind string) (*os.File, func(), error) {
	if c.Output == "" || c.Output == "-" {
		return os.Stdout, func() {}, nil
	}

	return getWriter(c.Output, kind)
}

func getReader(file, kind string) (rdr *os.File, cleanup func(), err error) {
	rdr, err = os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file: %q: %w", kind, file, err)
	}

	cleanup = func() {
		_ = rdr.Close()
	}

	return rdr, cleanup, nil
}

func getWriter(file, kind string) (wrt *os.File, cleanup func(), err error) {
	if file == "-" {
		return os.Stdout, func() {}, nil
	}

	wrt, err = os.Create(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file for writing: %q: %w", kind, file, err)
	}

	cleanup = func() {
		_ = wrt.Close()
	}

	return wrt, cleanup, nil
}

func inferMarkupFile(base string) string {
	ext := path.Ext(base)
	markup, _ := strings.CutSuffix(base, ext)

	return markup + ".html"
}

func inferImageFile(base string) string {
	ext := path.Ext(base)
	markup, _ := strings.CutSuffix(base, ext)

	return markup + ".png"
}
