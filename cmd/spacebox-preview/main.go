package main

import (
	"SpaceBox/internal/config"
	"SpaceBox/internal/logger"
	"SpaceBox/internal/preview"
	"SpaceBox/internal/renderer"
	"SpaceBox/internal/spacebox"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const faceDisplaySize = 192

// cross layout positions (column, row) of each face in a 4x3 grid
var crossCells = [renderer.MaxCubeFaces][2]int{
	{2, 1}, // +X
	{0, 1}, // -X
	{1, 0}, // +Y
	{1, 2}, // -Y
	{1, 1}, // +Z
	{3, 1}, // -Z
}

func main() {
	configPath := flag.String("config", "spacebox.json", "settings file; defaults are used when it does not exist")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.DefaultAppConfig()
	}
	if err := logger.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := preview.New(cfg.Seed)
	defer p.Close()
	logger.Log.Info("Preview starting", zap.Int64("seed", p.Seed()))

	a := app.New()
	w := a.NewWindow("SpaceBox Preview")

	blank := image.NewRGBA(image.Rect(0, 0, 1, 1))
	blank.Set(0, 0, color.RGBA{0, 0, 0, 255})

	var faceImages [renderer.MaxCubeFaces]*canvas.Image
	grid := container.NewGridWithColumns(4)
	cells := make([]fyne.CanvasObject, 12)
	for i := range cells {
		cells[i] = canvas.NewRectangle(color.Black)
	}
	for i := range faceImages {
		img := canvas.NewImageFromImage(blank)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(faceDisplaySize, faceDisplaySize))
		faceImages[i] = img
		col, row := crossCells[i][0], crossCells[i][1]
		cells[row*4+col] = img
	}
	for _, c := range cells {
		grid.Add(c)
	}

	gen := cfg.Generator
	pointStars := widget.NewCheck("Point stars", func(b bool) { gen.PointStars = b })
	pointStars.SetChecked(gen.PointStars)
	brightStars := widget.NewCheck("Bright stars", func(b bool) { gen.BrightStars = b })
	brightStars.SetChecked(gen.BrightStars)
	nebula := widget.NewCheck("Nebula", func(b bool) { gen.Nebula = b })
	nebula.SetChecked(gen.Nebula)
	sun := widget.NewCheck("Sun", func(b bool) { gen.Sun = b })
	sun.SetChecked(gen.Sun)

	sizes := make([]string, len(spacebox.CubeSizes))
	for i, s := range spacebox.CubeSizes {
		sizes[i] = strconv.Itoa(s)
	}
	sizeSelect := widget.NewSelect(sizes, func(s string) {
		if v, err := strconv.Atoi(s); err == nil {
			gen.CubeSize = v
		}
	})
	sizeSelect.SetSelected(strconv.Itoa(gen.CubeSize))

	status := widget.NewLabel("Idle")
	exportEntry := widget.NewEntry()
	exportEntry.SetPlaceHolder("export directory")
	exportEntry.SetText(cfg.ExportDir)

	var generateButton, exportButton *widget.Button
	generateButton = widget.NewButton("Generate", func() {
		generateButton.Disable()
		status.SetText("Rendering...")
		opts := gen
		go func() {
			defer generateButton.Enable()
			faces, result, err := p.Generate(opts)
			if err != nil {
				logger.Log.Error("Preview generation failed", zap.Error(err))
				status.SetText("Error: " + err.Error())
				return
			}
			for i, face := range faces {
				faceImages[i].Image = face
				faceImages[i].Refresh()
			}
			status.SetText(fmt.Sprintf("%dx%d, sun %v", opts.CubeSize, opts.CubeSize, result.SunEnabled))
			exportButton.Enable()
		}()
	})
	exportButton = widget.NewButton("Export PNG", func() {
		dir := exportEntry.Text
		if dir == "" {
			status.SetText("Set an export directory first")
			return
		}
		if err := p.Export(dir); err != nil {
			logger.Log.Error("Export failed", zap.Error(err))
			status.SetText("Export failed: " + err.Error())
			return
		}
		status.SetText("Exported to " + dir)
	})
	exportButton.Disable()

	panel := container.NewVBox(
		widget.NewLabel("Options"),
		pointStars, brightStars, nebula, sun,
		widget.NewLabel("Cube size"),
		sizeSelect,
		generateButton,
		widget.NewSeparator(),
		exportEntry,
		exportButton,
		status,
	)

	w.SetContent(container.NewBorder(nil, nil, panel, nil, grid))
	w.ShowAndRun()
}
