// Command signboard renders text to a 240x240 JPEG and uploads it to a
// slot on the network display, or uploads an existing image file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ByLCY/signboard/binding"
	"github.com/ByLCY/signboard/config"
	"github.com/ByLCY/signboard/markup"
	"github.com/ByLCY/signboard/render"
	"github.com/ByLCY/signboard/renderer"
	"github.com/ByLCY/signboard/upload"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Default()

	// Positional invocations predate the flag surface and are still
	// accepted: "signboard 3 photo.jpg" and "signboard 3 text hello".
	if code, handled := runLegacy(cfg, args); handled {
		return code
	}

	fs := pflag.NewFlagSet("signboard", pflag.ContinueOnError)
	var (
		slot        = fs.Int("slot", 0, "display slot (1-5)")
		text        = fs.String("text", "", "text to render")
		file        = fs.String("file", "", "image file to upload instead of text")
		fontSize    = fs.String("font-size", "auto", "font size: auto, small, medium, large, xlarge, or 8-100")
		fontColor   = fs.String("font-color", "", "text color: name, #rrggbb, or r,g,b")
		colorScheme = fs.String("color-scheme", "", "background/text scheme: default, blue, green, red, light, purple")
		textAlign   = fs.String("text-align", "center", "alignment: left, center, right, justify")
		alignment   = fs.String("alignment", "", "")
		textStroke  = fs.Bool("text-stroke", false, "outline the text")
		strokeWidth = fs.Int("stroke-width", 0, "outline width in pixels")
		strokeColor = fs.String("stroke-color", "", "outline color (default: contrasting)")
		noAuto      = fs.Bool("no-auto-stroke", false, "disable the automatic low-contrast outline")
		html        = fs.Bool("html", false, "force <b>/<i>/<u> markup parsing")
		padding     = fs.Int("padding", -1, "padding on all sides")
		padTop      = fs.Int("padding-top", -1, "top padding")
		padBottom   = fs.Int("padding-bottom", -1, "bottom padding")
		padLeft     = fs.Int("padding-left", -1, "left padding")
		padRight    = fs.Int("padding-right", -1, "right padding")
		gradient    = fs.Bool("gradient", false, "gradient background from the scheme background to --gradient-end")
		gradientEnd = fs.String("gradient-end", "black", "gradient end color")
		saveLocal   = fs.Bool("save-local", false, "also save the image under generated_images/")
		baseURL     = fs.String("base-url", cfg.Display.BaseURL, "display device base URL")
		dataJSON    = fs.String("data", "", "JSON document for ${path} placeholders in the text")
	)
	fs.MarkHidden("alignment")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg.Display.BaseURL = strings.TrimRight(*baseURL, "/")
	client := upload.NewClient(cfg.Display)

	if !cfg.ValidSlot(*slot) {
		fmt.Fprintf(os.Stderr, "invalid slot %d, valid slots: %v\n", *slot, cfg.Display.Slots)
		return 2
	}

	if *file != "" && *text != "" {
		fmt.Fprintln(os.Stderr, "--text and --file are mutually exclusive")
		return 2
	}
	if *file != "" {
		return report(uploadSource(client, *slot, upload.File{Path: *file}, filepath.Base(*file)))
	}
	if *text == "" {
		fmt.Fprintln(os.Stderr, "either --text or --file is required")
		return 2
	}

	var data any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &data); err != nil {
			fmt.Fprintf(os.Stderr, "invalid --data JSON: %v\n", err)
			return 2
		}
	}
	message := binding.Interpolate(*text, data)

	opts := render.Options{
		FontPath: "",
		Markup:   *html || markup.HasMarkup(message),
	}

	if *fontSize == "auto" {
		opts.AutoSize = true
	} else if size, ok := cfg.FontSize(*fontSize); ok {
		opts.FontSize = size
	} else {
		fmt.Fprintf(os.Stderr, "unrecognized font size %q, using auto\n", *fontSize)
		opts.AutoSize = true
	}

	if *colorScheme != "" {
		scheme := cfg.Scheme(*colorScheme)
		opts.Background = &scheme.Background
		opts.TextColor = &scheme.Text
	}
	if *fontColor != "" {
		c := cfg.ParseColor(*fontColor)
		opts.TextColor = &c
	}

	align := *textAlign
	if *alignment != "" {
		align = *alignment
	}
	opts.Align = render.ParseAlign(align)

	opts.StrokeWidth = *strokeWidth
	if *textStroke && opts.StrokeWidth == 0 {
		opts.StrokeWidth = 1
	}
	if *strokeColor != "" {
		c := cfg.ParseColor(*strokeColor)
		opts.StrokeColor = &c
	}
	// The contrast heuristic only runs when some stroke flag asked for
	// an outline; plain renders stay outline-free.
	strokeRequested := *textStroke || *strokeWidth > 0 || *strokeColor != ""
	opts.AutoStroke = strokeRequested && !*noAuto

	pad := cfg.Image.Padding
	if *padding >= 0 {
		pad = config.Padding{Top: *padding, Bottom: *padding, Left: *padding, Right: *padding}
	}
	if *padTop >= 0 {
		pad.Top = *padTop
	}
	if *padBottom >= 0 {
		pad.Bottom = *padBottom
	}
	if *padLeft >= 0 {
		pad.Left = *padLeft
	}
	if *padRight >= 0 {
		pad.Right = *padRight
	}

	var grad *render.Gradient
	if *gradient {
		grad = &render.Gradient{
			From: cfg.Scheme(*colorScheme).Background,
			To:   cfg.ParseColor(*gradientEnd),
			Dir:  render.Vertical,
		}
	}

	var r renderer.Renderer = render.NewTextRenderer(cfg, pad, opts, grad)
	jpegData, err := r.Render(message)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		return 1
	}

	if *saveLocal {
		if path, err := saveLocally(jpegData, *slot); err != nil {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
		} else {
			fmt.Printf("saved %s\n", path)
		}
	}

	return report(uploadSource(client, *slot, upload.Bytes{Data: jpegData}, ""))
}

// runLegacy handles the positional forms, which take exactly two or
// three arguments. handled is false when args do not match either form
// and flag parsing should proceed.
func runLegacy(cfg config.Config, args []string) (int, bool) {
	if len(args) < 2 || len(args) > 3 {
		return 0, false
	}
	slot, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}

	if len(args) == 3 {
		if args[1] != "text" {
			return 0, false
		}
		return run([]string{"--slot", args[0], "--text", args[2]}), true
	}

	if !isLegacyImage(args[1]) {
		return 0, false
	}
	if !cfg.ValidSlot(slot) {
		fmt.Fprintf(os.Stderr, "invalid slot %d, valid slots: %v\n", slot, cfg.Display.Slots)
		return 2, true
	}
	client := upload.NewClient(cfg.Display)
	return report(uploadSource(client, slot, upload.File{Path: args[1]}, filepath.Base(args[1]))), true
}

func isLegacyImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return true
	}
	return false
}

func uploadSource(client *upload.Client, slot int, src upload.Source, filename string) upload.Result {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := client.Upload(ctx, slot, src, filename)
	if err != nil {
		return upload.Result{Success: false, Message: err.Error(), Slot: slot}
	}
	return res
}

func report(res upload.Result) int {
	if res.Success {
		fmt.Printf("uploaded %s to slot %d\n", res.Filename, res.Slot)
		return 0
	}
	fmt.Fprintf(os.Stderr, "upload to slot %d failed: %s\n", res.Slot, res.Message)
	return 1
}

func saveLocally(data []byte, slot int) (string, error) {
	dir := "generated_images"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	name := fmt.Sprintf("img_slot%d_%s.jpg", slot, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
