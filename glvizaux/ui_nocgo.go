//go:build tinygo || !cgo

package glvizaux

import "errors"

func ui(cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
