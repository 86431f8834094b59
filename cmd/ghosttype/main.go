// GhostType - кроссплатформенный автотайпер.
//
// Работает в системном трее: после отсчёта набирает заданный текст
// в активное окно с настраиваемым темпом. Хоткеи по умолчанию:
// F9 - старт, F10 - пауза, F11 - аварийная остановка.
package main

import (
	"log"
	"os"

	"ghosttype/internal/app"
	"ghosttype/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("GhostType %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Println("Приложение запущено. F9 - набор текста из композера.")
	application.Run()
}
