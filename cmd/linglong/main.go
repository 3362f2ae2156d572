// Linglong - тренажёр языка в системном трее: уроки первого уровня
// с голосовым ответом и озвучкой заданий.
package main

import (
	"log"
	"os"

	"linglong/internal/app"
	"linglong/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("Linglong %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	application.Run()
}
