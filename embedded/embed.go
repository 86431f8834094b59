// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии ожидания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconTyping - иконка во время набора (зелёная).
//
//go:embed icon_typing.png
var IconTyping []byte

// IconPaused - иконка на паузе (жёлтая).
//
//go:embed icon_paused.png
var IconPaused []byte
