package pulse

import "github.com/cogentcore/webgpu/wgpu"

// BlendStateSprite blends sprite texels with straight alpha over the target.
var BlendStateSprite = wgpu.BlendStateAlphaBlending
