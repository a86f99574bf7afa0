package camera

import "github.com/chewxy/math32"

func sin(x float32) float32 { return math32.Sin(x) }
func cos(x float32) float32 { return math32.Cos(x) }
