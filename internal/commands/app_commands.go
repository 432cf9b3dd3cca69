package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/tidecanvas/internal/core"
	"github.com/bethropolis/tidecanvas/internal/event"
	"github.com/bethropolis/tidecanvas/internal/plugin"
	"github.com/bethropolis/tidecanvas/internal/scene"
)

// RegisterAppCommands registers the built-in ex-style commands.
func RegisterAppCommands(api plugin.EditorAPI) {
	register := func(name string, fn plugin.CommandFunc) { registerCommand(api, name, fn) }

	// --- File ---
	register("w", func(args []string) error {
		if err := api.SaveDocument(args...); err != nil {
			return err
		}
		api.SetStatusMessage("Saved %s", api.DocumentPath())
		return nil
	})
	register("q", func(args []string) error {
		api.RequestQuit(false)
		return nil
	})
	register("q!", func(args []string) error {
		api.RequestQuit(true)
		return nil
	})
	writeQuit := func(args []string) error {
		if err := api.SaveDocument(args...); err != nil {
			return err
		}
		api.RequestQuit(true)
		return nil
	}
	register("wq", writeQuit)
	register("x", writeQuit)

	// --- History ---
	register("undo", func(args []string) error {
		if !api.Document().Undo() {
			api.SetStatusMessage("Nothing to undo")
		}
		return nil
	})
	register("redo", func(args []string) error {
		if !api.Document().Redo() {
			api.SetStatusMessage("Nothing to redo")
		}
		return nil
	})
	register("history", func(args []string) error {
		api.SetStatusMessage("%s", HistorySummary(api.Document()))
		return nil
	})
	register("jump", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: jump N (0 rewinds to the oldest state)")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid history position '%s'", args[0])
		}
		doc := api.Document()
		if !doc.JumpTo(n - 1) {
			return fmt.Errorf("history position %d out of range 0-%d", n, doc.HistoryLen())
		}
		api.SetStatusMessage("%s", HistorySummary(doc))
		return nil
	})

	// --- Document ---
	register("rename", func(args []string) error {
		name := strings.Join(args, " ")
		if name == "" {
			return fmt.Errorf("usage: rename NAME")
		}
		doc := api.Document()
		id := doc.Selection().Primary()
		if id == "" {
			doc.SetName(name)
			api.SetStatusMessage("Document renamed to %s", name)
			return nil
		}
		return doc.ExecuteCommand(doc.NewUpdatePropertyCommand(id, scene.KeyName, name))
	})
	register("set", func(args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("usage: set KEY VALUE")
		}
		doc := api.Document()
		ids := doc.Selection().Selected()
		if len(ids) == 0 {
			return core.ErrNothingSelected
		}
		value := ParseValue(strings.Join(args[1:], " "))
		doc.StartCommandGroup(fmt.Sprintf("Set %s", args[0]))
		defer doc.EndCommandGroup()
		for _, id := range ids {
			if err := doc.ExecuteCommand(doc.NewUpdatePropertyCommand(id, args[0], value)); err != nil {
				return err
			}
		}
		return nil
	})
	register("page", func(args []string) error {
		doc := api.Document()
		if len(args) == 0 {
			api.SetStatusMessage("Active page: %s", doc.ActivePage())
			return nil
		}
		return doc.SetActivePage(args[0])
	})
	register("tool", func(args []string) error {
		doc := api.Document()
		if len(args) == 0 {
			api.SetStatusMessage("Active tool: %s", doc.ActiveTool())
			return nil
		}
		tool, ok := core.ParseTool(args[0])
		if !ok {
			return fmt.Errorf("unknown tool '%s'", args[0])
		}
		doc.SetActiveTool(tool)
		api.DispatchEvent(event.TypeToolChanged, event.ToolChangedData{Tool: tool.String()})
		return nil
	})
	register("zoom", func(args []string) error {
		v := api.Document().View()
		if len(args) == 0 {
			api.SetStatusMessage("Zoom: %.0f%%", v.Zoom()*100)
			return nil
		}
		pct, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "%"), 64)
		if err != nil || pct <= 0 {
			return fmt.Errorf("invalid zoom '%s'", args[0])
		}
		v.SetZoom(pct / 100)
		return nil
	})

	RegisterThemeCommands(api)
}

// HistorySummary describes the current history position, e.g.
// "History 2/3: Move 1 node".
func HistorySummary(doc *core.Document) string {
	idx := doc.HistoryIndex()
	if idx < 0 {
		return fmt.Sprintf("History 0/%d: original", doc.HistoryLen())
	}
	desc, _ := doc.HistoryDescription(idx)
	return fmt.Sprintf("History %d/%d: %s", idx+1, doc.HistoryLen(), desc)
}

// ParseValue turns command-line text into a bool, number or string.
func ParseValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
