// Package shaders embeds the GLSL sources of the scene programs.
package shaders

import _ "embed"

var (
	//go:embed object.vert
	ObjectVertex string
	//go:embed object.frag
	ObjectFragment string

	//go:embed water.vert
	WaterVertex string
	//go:embed water.frag
	WaterFragment string

	//go:embed skybox.vert
	SkyboxVertex string
	//go:embed skybox.frag
	SkyboxFragment string

	//go:embed image.vert
	ImageVertex string
	//go:embed image.frag
	ImageFragment string

	//go:embed shadow.vert
	ShadowVertex string
	//go:embed shadow.frag
	ShadowFragment string

	//go:embed lines.vert
	LinesVertex string
	//go:embed lines.frag
	LinesFragment string
)
