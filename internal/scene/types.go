package scene

// NodeType is the scene-graph node kind, matching the file format's names.
type NodeType string

const (
	TypeDocument         NodeType = "DOCUMENT"
	TypeCanvas           NodeType = "CANVAS"
	TypeFrame            NodeType = "FRAME"
	TypeGroup            NodeType = "GROUP"
	TypeVector           NodeType = "VECTOR"
	TypeBooleanOperation NodeType = "BOOLEAN_OPERATION"
	TypeStar             NodeType = "STAR"
	TypeLine             NodeType = "LINE"
	TypeEllipse          NodeType = "ELLIPSE"
	TypeRegularPolygon   NodeType = "REGULAR_POLYGON"
	TypeRectangle        NodeType = "RECTANGLE"
	TypeText             NodeType = "TEXT"
	TypeSlice            NodeType = "SLICE"
	TypeComponent        NodeType = "COMPONENT"
	TypeComponentSet     NodeType = "COMPONENT_SET"
	TypeInstance         NodeType = "INSTANCE"
	TypeSticky           NodeType = "STICKY"
	TypeShapeWithText    NodeType = "SHAPE_WITH_TEXT"
	TypeConnector        NodeType = "CONNECTOR"
	TypeSection          NodeType = "SECTION"
)

var knownTypes = map[NodeType]struct{}{
	TypeDocument: {}, TypeCanvas: {}, TypeFrame: {}, TypeGroup: {}, TypeVector: {},
	TypeBooleanOperation: {}, TypeStar: {}, TypeLine: {}, TypeEllipse: {},
	TypeRegularPolygon: {}, TypeRectangle: {}, TypeText: {}, TypeSlice: {},
	TypeComponent: {}, TypeComponentSet: {}, TypeInstance: {}, TypeSticky: {},
	TypeShapeWithText: {}, TypeConnector: {}, TypeSection: {},
}

// Known reports whether t is one of the enumerated node types.
func (t NodeType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// IsContainer reports whether nodes of this type hold children the user can
// enter for scoped editing.
func (t NodeType) IsContainer() bool {
	switch t {
	case TypeDocument, TypeCanvas, TypeFrame, TypeGroup, TypeSection,
		TypeComponent, TypeComponentSet, TypeInstance, TypeBooleanOperation:
		return true
	}
	return false
}

// IsPage reports whether the type is a top-level page.
func (t NodeType) IsPage() bool { return t == TypeCanvas }
