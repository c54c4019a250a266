//go:build !windows

package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// SetDarkTitleBar only has an effect on Windows.
func SetDarkTitleBar(*glfw.Window) {}
