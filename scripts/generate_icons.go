//go:build ignore

// Генерирует иконки трея: лицо маскота для каждого настроения и
// значки состояний голосового ответа.
// Запуск: go run scripts/generate_icons.go [dir]
package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
)

const size = 64

var (
	ink   = color.RGBA{40, 40, 48, 255}
	white = color.RGBA{255, 255, 255, 255}
)

type face struct {
	skin color.RGBA
	// Изгиб рта: >0 улыбка, <0 грусть, 0 прямая линия
	mouth float64
}

type badge struct {
	fill color.RGBA
	dots int // сколько точек "ожидания" рисовать под микрофоном
}

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("каталог %s: %v", dir, err)
	}

	faces := map[string]face{
		"icon_neutral.png": {skin: color.RGBA{150, 150, 160, 255}},
		"icon_happy.png":   {skin: color.RGBA{60, 170, 90, 255}, mouth: 1},
		"icon_sad.png":     {skin: color.RGBA{70, 110, 200, 255}, mouth: -1},
	}
	badges := map[string]badge{
		"icon_recording.png":  {fill: color.RGBA{220, 50, 50, 255}},
		"icon_converting.png": {fill: color.RGBA{230, 160, 50, 255}, dots: 3},
	}

	for name, f := range faces {
		write(filepath.Join(dir, name), drawFace(f))
	}
	for name, b := range badges {
		write(filepath.Join(dir, name), drawBadge(b))
	}
}

func write(path string, img image.Image) {
	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		log.Fatalf("%s: %v", path, err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	log.Printf("записан %s", path)
}

func canvas() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, size, size))
}

func disc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func rect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawFace(f face) *image.RGBA {
	img := canvas()
	disc(img, 32, 32, 28, f.skin)

	disc(img, 22, 26, 5, white)
	disc(img, 42, 26, 5, white)
	disc(img, 22, 27, 2.5, ink)
	disc(img, 42, 27, 2.5, ink)

	// Рот - парабола от x=20 до x=44
	for x := 20.0; x <= 44; x += 0.5 {
		t := (x - 32) / 12
		y := 44 - f.mouth*6*(1-t*t)
		disc(img, x, y, 1.5, ink)
	}
	return img
}

func drawBadge(b badge) *image.RGBA {
	img := canvas()

	// Капсула микрофона, подставка и основание
	disc(img, 32, 16, 10, b.fill)
	disc(img, 32, 30, 10, b.fill)
	rect(img, image.Rect(22, 16, 43, 31), b.fill)
	rect(img, image.Rect(30, 40, 35, 50), b.fill)
	rect(img, image.Rect(22, 50, 43, 54), b.fill)

	for i := 0; i < b.dots; i++ {
		disc(img, float64(20+i*12), 60, 2.5, ink)
	}
	return img
}
