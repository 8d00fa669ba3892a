// Command glyphpack decodes, previews and regenerates 1-bit glyph byte arrays.
//
// Usage:
//
//	glyphpack [-config FILE] [-v] decode [-multi] [-at X,Y] [-spacing N] FILE|-
//	glyphpack [-config FILE] [-v] generate [-format hex|bin|status] [-template FILE] [-label NAME] FILE|-
//	glyphpack [-config FILE] [-v] view [-multi] FILE|-
//	glyphpack [-config FILE] [-v] preview [-spi BUS] [-dc PIN] [-rst PIN] FILE|-
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/flavioheleno/glyphpack"
	"github.com/flavioheleno/glyphpack/codec"
	"github.com/flavioheleno/glyphpack/st7565"
	"github.com/flavioheleno/glyphpack/termview"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	verbose    = flag.Bool("v", false, "Debug logging")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config FILE] [-v] decode|generate|view|preview [flags] FILE|-\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := glyphpack.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = glyphpack.LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	level, _ := cfg.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch cmd {
	case "decode":
		err = runDecode(cfg, args, os.Stdout)
	case "generate":
		err = runGenerate(cfg, args, os.Stdout)
	case "view":
		err = runView(ctx, cfg, args)
	case "preview":
		err = runPreview(cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(cmd+" failed", "error", err)
		os.Exit(1)
	}
}

// readInput reads the file named by the single positional argument, or stdin for "-".
func readInput(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", errors.New("expected exactly one input file")
	}
	name := fs.Arg(0)
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid point %q, want X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

// load decodes text into a new editor. With multi set, every {...} block
// is queued and placed at anchor.
func load(cfg *glyphpack.Config, text string, multi bool, anchor image.Point) (*glyphpack.Editor, error) {
	e := glyphpack.New(cfg)
	reqs := []glyphpack.Request{glyphpack.Decode(text)}
	if multi {
		reqs = []glyphpack.Request{
			glyphpack.QueueMode(true, text),
			glyphpack.Place(anchor.X, anchor.Y),
		}
	}
	for _, req := range reqs {
		if _, err := e.Dispatch(req); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func runDecode(cfg *glyphpack.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	multi := fs.Bool("multi", false, "Queue every {...} block and place them side by side")
	at := fs.String("at", "0,0", "Placement anchor for -multi")
	spacing := fs.Int("spacing", cfg.Spacing, "Columns between placed glyphs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := readInput(fs)
	if err != nil {
		return err
	}
	anchor, err := parsePoint(*at)
	if err != nil {
		return err
	}

	cfg.Spacing = *spacing
	e, err := load(cfg, text, *multi, anchor)
	if err != nil {
		return err
	}

	img := e.Image()
	r := e.WorkArea()
	if *multi {
		r = img.Bounds()
	}
	for _, line := range termview.Lines(img, r) {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}

func runGenerate(cfg *glyphpack.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	format := fs.String("format", "hex", "Output format: hex, bin or status")
	templatePath := fs.String("template", "", "Template to rewrite (default: the input itself)")
	label := fs.String("label", "", "Offset name for status output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := codec.ParseFormat(*format)
	if err != nil {
		return err
	}
	text, err := readInput(fs)
	if err != nil {
		return err
	}

	template := text
	if *templatePath != "" {
		data, err := os.ReadFile(*templatePath)
		if err != nil {
			return fmt.Errorf("read template %s: %w", *templatePath, err)
		}
		template = string(data)
	}

	e, err := load(cfg, text, false, image.Point{})
	if err != nil {
		return err
	}
	if *label != "" {
		if _, err := e.Dispatch(glyphpack.SetLabel(*label)); err != nil {
			return err
		}
	}

	res, err := e.Dispatch(glyphpack.Generate(template, f))
	if err != nil {
		return err
	}
	if !res.Generated {
		slog.Warn("nothing to generate: the canvas is blank")
		return nil
	}
	slog.Debug("generated", "format", f, "dims", res.Dims, "label", res.Label)
	fmt.Fprintln(w, res.Output)
	return nil
}

func runView(ctx context.Context, cfg *glyphpack.Config, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	multi := fs.Bool("multi", false, "Queue every {...} block and place them side by side")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := readInput(fs)
	if err != nil {
		return err
	}
	e, err := load(cfg, text, *multi, image.Point{})
	if err != nil {
		return err
	}

	v, err := termview.New()
	if err != nil {
		return err
	}
	if err := v.Init(); err != nil {
		return err
	}
	defer v.Close()

	work := e.WorkArea()
	v.Draw(fmt.Sprintf("%s  %dx%d  label %s  (any key to quit)", fs.Arg(0), work.Dx(), work.Dy(), e.Label()), e.Image(), work)
	if err := v.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runPreview(cfg *glyphpack.Config, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	spiBus := fs.String("spi", cfg.Display.SPI, "SPI bus name (empty for default)")
	dcPin := fs.String("dc", cfg.Display.DC, "Data/Command pin name")
	rstPin := fs.String("rst", cfg.Display.RST, "Reset pin name (empty if not wired)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text, err := readInput(fs)
	if err != nil {
		return err
	}
	e, err := load(cfg, text, false, image.Point{})
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("initialize periph.io: %w", err)
	}

	b, err := spireg.Open(*spiBus)
	if err != nil {
		return fmt.Errorf("open SPI bus: %w", err)
	}
	defer b.Close()

	dc := gpioreg.ByName(*dcPin)
	if dc == nil {
		return fmt.Errorf("GPIO pin %s not found", *dcPin)
	}
	var rst gpio.PinIO
	if *rstPin != "" {
		if rst = gpioreg.ByName(*rstPin); rst == nil {
			return fmt.Errorf("GPIO pin %s not found", *rstPin)
		}
	}

	dev, err := st7565.NewSPI(b, dc, &st7565.Opts{
		W:        128,
		H:        64,
		Rotated:  cfg.Display.Rotated,
		Contrast: byte(cfg.Display.Contrast),
		RST:      rst,
	})
	if err != nil {
		return err
	}
	slog.Info("display initialized", "dev", dev.String())

	return dev.Draw(dev.Bounds(), e.Image(), image.Point{})
}
