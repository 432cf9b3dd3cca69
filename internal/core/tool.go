package core

// Tool is the active canvas tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolHand
	ToolFrame
	ToolRectangle
	ToolEllipse
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolHand:
		return "hand"
	case ToolFrame:
		return "frame"
	case ToolRectangle:
		return "rectangle"
	case ToolEllipse:
		return "ellipse"
	case ToolText:
		return "text"
	}
	return "unknown"
}

// ParseTool looks a tool up by its String name.
func ParseTool(name string) (Tool, bool) {
	for t := ToolSelect; t <= ToolText; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return ToolSelect, false
}
