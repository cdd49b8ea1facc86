package common

const (
	// TileSize is the edge length of one grid cell in pixels.
	TileSize = 32

	WindowWidth  = 800
	WindowHeight = 600
)

// Well-known tile property keys.
const (
	PropWalkable      = "walkable"
	PropTextureID     = "textureID"
	PropObjectTexture = "objectTexture"
)
