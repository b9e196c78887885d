package pulse

import "github.com/cogentcore/webgpu/wgpu"

// StripSRGB returns the linear counterpart of an sRGB texture format.
// Formats without an sRGB variant are returned unchanged.
func StripSRGB(format wgpu.TextureFormat) wgpu.TextureFormat {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8Unorm
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return wgpu.TextureFormatBGRA8Unorm
	default:
		return format
	}
}
