package export

import (
	"encoding/json"
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/session"
)

func sampleProfile() *model.Profile {
	p := model.NewProfile(model.FormatChrome)
	p.Label = "demo"
	p.StartTimeUs = 0
	p.EndTimeUs = 1000
	nameID := p.Interner().Intern("main")
	p.AddSpan(model.Span{Name: nameID, Category: -1, ThreadID: 1, StartUs: 0, EndUs: 1000, SelfUs: 1000})
	p.Threads = append(p.Threads, model.Thread{ID: 1, Name: "main", RootIDs: []model.FrameID{1}})
	return p
}

func TestProfileJSONNilProfileErrors(t *testing.T) {
	if _, err := ProfileJSON(nil); err == nil {
		t.Fatalf("ProfileJSON(nil) should error")
	}
}

func TestProfileJSONRoundTrip(t *testing.T) {
	p := sampleProfile()
	data, err := ProfileJSON(p)
	if err != nil {
		t.Fatalf("ProfileJSON() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	if raw["name"] != "demo" {
		t.Fatalf("exported name = %v, want demo", raw["name"])
	}

	back, err := ProfileFromJSON(data)
	if err != nil {
		t.Fatalf("ProfileFromJSON() error = %v", err)
	}
	if back.Label != p.Label {
		t.Fatalf("round-tripped Label = %q, want %q", back.Label, p.Label)
	}
	if len(back.Arena) != len(p.Arena) {
		t.Fatalf("round-tripped Arena len = %d, want %d", len(back.Arena), len(p.Arena))
	}
	if back.Name(back.Arena[0].Name) != "main" {
		t.Fatalf("round-tripped interner did not restore names: got %q", back.Name(back.Arena[0].Name))
	}
}

func TestSessionJSONEmptySessionErrors(t *testing.T) {
	sess := session.New()
	if _, err := SessionJSON(sess); err == nil {
		t.Fatalf("SessionJSON on an empty session should error")
	}
}

func TestSessionJSONIncludesEveryEntry(t *testing.T) {
	sess := session.New()
	sess.AddProfile("a.txt", []byte("main;parseHTML 5\n"))
	sess.AddProfile("b.txt", []byte("main;layout 3\n"))

	data, err := SessionJSON(sess)
	if err != nil {
		t.Fatalf("SessionJSON() error = %v", err)
	}
	var raw struct {
		Entries []struct {
			Label string `json:"label"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	if len(raw.Entries) != 2 {
		t.Fatalf("SessionJSON entries = %d, want 2", len(raw.Entries))
	}
}
