package editor

// Tool is the editing action applied on click.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolInspector
	ToolFill
)

var allTools = []Tool{ToolPencil, ToolEraser, ToolInspector, ToolFill}

func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "Pencil"
	case ToolEraser:
		return "Eraser"
	case ToolInspector:
		return "Inspector"
	case ToolFill:
		return "Fill"
	default:
		return "Unknown"
	}
}

// Layer is the part of a tile a paint tool writes to.
type Layer int

const (
	LayerGround Layer = iota
	LayerObjects
	LayerCollision
)

var allLayers = []Layer{LayerGround, LayerObjects, LayerCollision}

func (l Layer) String() string {
	switch l {
	case LayerGround:
		return "Ground"
	case LayerObjects:
		return "Objects"
	case LayerCollision:
		return "Collision"
	default:
		return "Unknown"
	}
}

// Tools lists every tool in keyboard order.
func Tools() []Tool { return append([]Tool(nil), allTools...) }

// Layers lists every layer in keyboard order.
func Layers() []Layer { return append([]Layer(nil), allLayers...) }
