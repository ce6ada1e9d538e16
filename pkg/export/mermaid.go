package export

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// sanitizeMermaidID strips a name down to Mermaid's allowed node-ID
// character set (alphanumeric, hyphen, underscore).
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "node"
	}
	return sb.String()
}

// sanitizeMermaidText escapes characters that would otherwise break a
// Mermaid node label.
func sanitizeMermaidText(text string) string {
	replacer := strings.NewReplacer(
		"\"", "'",
		"[", "(",
		"]", ")",
		"{", "(",
		"}", ")",
		"<", "&lt;",
		">", "&gt;",
		"|", "/",
		"#", "",
		"`", "'",
		"\n", " ",
		"\r", "",
	)
	result := replacer.Replace(text)
	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, result)
	result = strings.TrimSpace(result)

	runes := []rune(result)
	if len(runes) > 40 {
		result = string(runes[:37]) + "..."
	}
	return result
}

// safeIDAllocator hands out collision-free Mermaid node IDs for a set of
// possibly-duplicate or syntax-unfriendly names.
type safeIDAllocator struct {
	byOriginal map[string]string
	used       map[string]bool
}

func newSafeIDAllocator() *safeIDAllocator {
	return &safeIDAllocator{byOriginal: map[string]string{}, used: map[string]bool{}}
}

func (a *safeIDAllocator) get(orig string) string {
	if safe, ok := a.byOriginal[orig]; ok {
		return safe
	}
	base := sanitizeMermaidID(orig)
	safe := base
	if a.used[safe] {
		h := fnv.New32a()
		_, _ = h.Write([]byte(orig))
		safe = fmt.Sprintf("%s_%x", base, h.Sum32())
	}
	a.used[safe] = true
	a.byOriginal[orig] = safe
	return safe
}

// MermaidFlowGraph renders a profile's FlowEdges as a Mermaid flowchart:
// one node per distinct endpoint timestamp/thread pairing collapsed to its
// nearest enclosing span name, one edge per FlowEdge labeled with the flow's
// name. Edges carry no per-thread styling.
func MermaidFlowGraph(p *model.Profile, title string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("graph LR\n    %%%% %s\n", sanitizeMermaidText(title)))

	ids := newSafeIDAllocator()
	seen := map[string]bool{}

	nodeLabel := func(ts int64, tid int64) (string, string) {
		key := fmt.Sprintf("t%d@%d", tid, ts)
		name := nearestSpanName(p, tid, ts)
		return key, name
	}

	for _, e := range p.FlowEdges {
		fromKey, fromName := nodeLabel(e.FromTs, e.FromTid)
		toKey, toName := nodeLabel(e.ToTs, e.ToTid)

		fromID := ids.get(fromKey)
		toID := ids.get(toKey)

		if !seen[fromID] {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", fromID, sanitizeMermaidText(fromName)))
			seen[fromID] = true
		}
		if !seen[toID] {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", toID, sanitizeMermaidText(toName)))
			seen[toID] = true
		}
		sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", fromID, sanitizeMermaidText(e.Name), toID))
	}

	if len(p.FlowEdges) == 0 {
		sb.WriteString("    NoEdges[\"No flow edges\"]\n")
	}
	return sb.String()
}

// nearestSpanName finds the deepest span on thread tid whose interval
// contains ts, falling back to the timestamp itself if no span covers it.
func nearestSpanName(p *model.Profile, tid int64, ts int64) string {
	var best *model.Span
	for i := range p.Arena {
		s := &p.Arena[i]
		if s.ThreadID != tid {
			continue
		}
		if ts >= s.StartUs && ts <= s.EndUs && (best == nil || s.Depth > best.Depth) {
			best = s
		}
	}
	if best != nil {
		return p.Name(best.Name)
	}
	return fmt.Sprintf("t%d@%dus", tid, ts)
}
