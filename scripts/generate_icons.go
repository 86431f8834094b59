//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon_idle.png", color.RGBA{128, 128, 128, 255}},  // Серый
		{"icon_typing.png", color.RGBA{60, 180, 90, 255}},  // Зелёный
		{"icon_paused.png", color.RGBA{230, 180, 50, 255}}, // Жёлтый
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Рисуем клавишу (скруглённый квадрат)
	const (
		left, top     = 12, 10
		right, bottom = 52, 44
		corner        = 6.0
	)

	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			dx, dy := 0.0, 0.0
			if x < left+int(corner) {
				dx = float64(left+int(corner)-x)
			} else if x > right-int(corner) {
				dx = float64(x - (right - int(corner)))
			}
			if y < top+int(corner) {
				dy = float64(top+int(corner)-y)
			} else if y > bottom-int(corner) {
				dy = float64(y - (bottom - int(corner)))
			}
			if dx*dx+dy*dy <= corner*corner {
				img.Set(x, y, c)
			}
		}
	}

	// Рисуем курсор внутри клавиши (вертикальная прорезь)
	for y := top + 8; y <= bottom-8; y++ {
		for x := size/2 - 2; x <= size/2+2; x++ {
			img.Set(x, y, color.RGBA{0, 0, 0, 0})
		}
	}

	// Рисуем строку под клавишей
	for y := bottom + 6; y <= bottom+12; y++ {
		for x := left + 4; x <= right-4; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
