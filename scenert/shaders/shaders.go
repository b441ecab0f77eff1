package shaders

import (
	_ "embed"
)

//go:embed scene.wgsl
var SceneWGSL string

//go:embed shadow.wgsl
var ShadowWGSL string

//go:embed snow.wgsl
var SnowWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string
