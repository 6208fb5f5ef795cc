package domain

import "image"

// Rasterizer renders the vector output of a Compiler into a bitmap. `size` specifies the length
// of the longest side in pixels.
type Rasterizer interface {
	Rasterize(result *CompileResult, size int) (image.Image, error)
}
