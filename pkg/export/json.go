// Package export serializes profiles and sessions to JSON, SVG, SQLite,
// and raster PNG, per §4.9 and §6's export schema notes.
package export

import (
	"encoding/json"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/session"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
)

// schemaVersion is bumped whenever the JSON export shape changes in a way
// that would break a prior export's round-trip.
const schemaVersion = 1

// jsonProfile mirrors model.Profile field-for-field so a round trip
// through JSON is lossless for the normalized model.
type jsonProfile struct {
	Version     int                `json:"version"`
	Name        string             `json:"name"`
	Format      model.Format       `json:"format"`
	StartTimeUs int64              `json:"start_time_us"`
	EndTimeUs   int64              `json:"end_time_us"`
	Threads     []model.Thread     `json:"threads"`
	Counters    []model.Counter    `json:"counters"`
	Markers     []model.Marker     `json:"markers"`
	AsyncSpans  []model.AsyncSpan  `json:"async_spans"`
	Frames      []model.Frame      `json:"frames"`
	FlowEdges   []model.FlowEdge   `json:"flow_edges"`
	Arena       []model.Span       `json:"arena"`
	Names       []string           `json:"names"`
}

// ProfileJSON serializes a single Profile to the stable export schema.
func ProfileJSON(p *model.Profile) ([]byte, error) {
	if p == nil {
		return nil, spanerr.NewExportError(spanerr.NoProfileLoaded, nil)
	}
	jp := jsonProfile{
		Version:     schemaVersion,
		Name:        p.Label,
		Format:      p.Format,
		StartTimeUs: p.StartTimeUs,
		EndTimeUs:   p.EndTimeUs,
		Threads:     p.Threads,
		Counters:    p.Counters,
		Markers:     p.Markers,
		AsyncSpans:  p.AsyncSpans,
		Frames:      p.Frames,
		FlowEdges:   p.FlowEdges,
		Arena:       p.Arena,
		Names:       internedNames(p),
	}
	data, err := json.MarshalIndent(jp, "", "  ")
	if err != nil {
		return nil, spanerr.NewExportError(spanerr.SerializationFailed, err)
	}
	return data, nil
}

func internedNames(p *model.Profile) []string {
	names := make([]string, p.Interner().Len())
	for i := range names {
		names[i] = p.Name(int32(i))
	}
	return names
}

// ProfileFromJSON deserializes a Profile previously produced by
// ProfileJSON, rebuilding its interner from the exported name table.
func ProfileFromJSON(data []byte) (*model.Profile, error) {
	var jp jsonProfile
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, spanerr.NewExportError(spanerr.SerializationFailed, err)
	}
	p := model.NewProfile(jp.Format)
	p.Label = jp.Name
	p.StartTimeUs = jp.StartTimeUs
	p.EndTimeUs = jp.EndTimeUs
	p.Threads = jp.Threads
	p.Counters = jp.Counters
	p.Markers = jp.Markers
	p.AsyncSpans = jp.AsyncSpans
	p.Frames = jp.Frames
	p.FlowEdges = jp.FlowEdges
	p.Arena = jp.Arena
	for _, n := range jp.Names {
		p.Interner().Intern(n)
	}
	return p, nil
}

// jsonSession mirrors session.Info plus every entry's full profile, for a
// whole-session export.
type jsonSession struct {
	Version int           `json:"version"`
	Entries []jsonEntry   `json:"entries"`
}

type jsonEntry struct {
	Label    string      `json:"label"`
	OffsetUs int64       `json:"offset_us"`
	Profile  jsonProfile `json:"profile"`
}

// SessionJSON serializes every loaded profile in sess, with its offset,
// to the stable export schema.
func SessionJSON(sess *session.Session) ([]byte, error) {
	entries := sess.Entries()
	if len(entries) == 0 {
		return nil, spanerr.NewExportError(spanerr.NoProfileLoaded, nil)
	}
	js := jsonSession{Version: schemaVersion}
	for _, e := range entries {
		js.Entries = append(js.Entries, jsonEntry{
			Label:    e.Label,
			OffsetUs: e.OffsetUs,
			Profile: jsonProfile{
				Version:     schemaVersion,
				Name:        e.Profile.Label,
				Format:      e.Profile.Format,
				StartTimeUs: e.Profile.StartTimeUs,
				EndTimeUs:   e.Profile.EndTimeUs,
				Threads:     e.Profile.Threads,
				Counters:    e.Profile.Counters,
				Markers:     e.Profile.Markers,
				AsyncSpans:  e.Profile.AsyncSpans,
				Frames:      e.Profile.Frames,
				FlowEdges:   e.Profile.FlowEdges,
				Arena:       e.Profile.Arena,
				Names:       internedNames(e.Profile),
			},
		})
	}
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, spanerr.NewExportError(spanerr.SerializationFailed, err)
	}
	return data, nil
}
