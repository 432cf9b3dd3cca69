// plugins/nodecount/nodecount.go
package nodecount

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/scene"
)

// Ensure NodeCount implements plugin.Plugin
var _ plugin.Plugin = (*NodeCount)(nil)

// NodeCount reports how many nodes of each type the document holds.
type NodeCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the NodeCount plugin.
func New() *NodeCount {
	return &NodeCount{}
}

// Name returns the unique name of the plugin.
func (p *NodeCount) Name() string {
	return "NodeCount"
}

// Initialize registers the :count command.
func (p *NodeCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("count", p.executeCount); err != nil {
		return fmt.Errorf("failed to register 'count' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *NodeCount) Shutdown() error {
	return nil
}

func (p *NodeCount) executeCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("nodecount plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Summary(p.api.Document()))
	return nil
}

// Summary formats the per-type counts, e.g.
// "5 nodes: 1 CANVAS, 1 FRAME, 3 TEXT | 2 selected".
func Summary(doc *core.Document) string {
	byType := CountByType(doc.Nodes())
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%d %s", byType[scene.NodeType(t)], t)
	}
	noun := "nodes"
	if doc.NodeCount() == 1 {
		noun = "node"
	}
	msg := fmt.Sprintf("%d %s", doc.NodeCount(), noun)
	if len(parts) > 0 {
		msg += ": " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s | %d selected", msg, doc.Selection().Len())
}

// CountByType tallies nodes per type. Untyped nodes count as "UNKNOWN".
func CountByType(nodes map[string]scene.Node) map[scene.NodeType]int {
	counts := make(map[scene.NodeType]int)
	for _, n := range nodes {
		t := n.Type()
		if t == "" {
			t = "UNKNOWN"
		}
		counts[t]++
	}
	return counts
}
