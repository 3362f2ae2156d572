// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconNeutral - маскот ждёт ответа (серая).
//
//go:embed icon_neutral.png
var IconNeutral []byte

// IconHappy - верный ответ (зелёная).
//
//go:embed icon_happy.png
var IconHappy []byte

// IconSad - неверный ответ (синяя).
//
//go:embed icon_sad.png
var IconSad []byte

// IconRecording - идёт запись голосового ответа (красная).
//
//go:embed icon_recording.png
var IconRecording []byte

// IconConverting - идёт распознавание (оранжевая).
//
//go:embed icon_converting.png
var IconConverting []byte

// LessonLevel1 - урок первого уровня.
//
//go:embed lesson_level1.yaml
var LessonLevel1 []byte
