//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"
	"linglong/internal/config"
)

// modifierMap: модификаторы для macOS.
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.ModOption,
	config.ModSuper: hotkey.ModCmd,
}
