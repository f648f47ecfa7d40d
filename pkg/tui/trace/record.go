// ABOUTME: Record is the JSON shape of one traced frame, with hand-written easyjson codecs
// ABOUTME: Zero-reflection encoding keeps tracing cheap enough to leave on in the frame loop

package trace

import (
	"time"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/frametui/pkg/tui"
)

// Record is one line of a trace file.
type Record struct {
	Frame      uint64  `json:"frame"`
	Stop       string  `json:"stop"`
	DurationUS int64   `json:"duration_us"`
	Labels     []Label `json:"labels"`
	Err        string  `json:"error,omitempty"`
}

// Label is a label drawn in a traced frame.
type Label struct {
	Text string `json:"text"`
	Col  int    `json:"col"`
	Row  int    `json:"row"`
}

// FromFrame converts a frame loop record into its trace form.
func FromFrame(rec tui.FrameRecord) Record {
	labels := make([]Label, len(rec.Labels))
	for i, l := range rec.Labels {
		labels[i] = Label{Text: l.Text, Col: l.Col, Row: l.Row}
	}
	return Record{
		Frame:      rec.Frame,
		Stop:       rec.Stop.String(),
		DurationUS: rec.Duration.Microseconds(),
		Labels:     labels,
		Err:        rec.Err,
	}
}

// Duration returns the frame duration.
func (r Record) Duration() time.Duration {
	return time.Duration(r.DurationUS) * time.Microsecond
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r Record) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"frame":`)
	w.Uint64(r.Frame)
	w.RawString(`,"stop":`)
	w.String(r.Stop)
	w.RawString(`,"duration_us":`)
	w.Int64(r.DurationUS)
	w.RawString(`,"labels":[`)
	for i, l := range r.Labels {
		if i > 0 {
			w.RawByte(',')
		}
		l.MarshalEasyJSON(w)
	}
	w.RawByte(']')
	if r.Err != "" {
		w.RawString(`,"error":`)
		w.String(r.Err)
	}
	w.RawByte('}')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler. Unknown fields are
// skipped.
func (r *Record) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		field := l.UnsafeFieldName(false)
		l.WantColon()
		if l.IsNull() {
			l.Skip()
			l.WantComma()
			continue
		}
		switch field {
		case "frame":
			r.Frame = l.Uint64()
		case "stop":
			r.Stop = l.String()
		case "duration_us":
			r.DurationUS = l.Int64()
		case "labels":
			r.Labels = r.Labels[:0]
			l.Delim('[')
			for !l.IsDelim(']') {
				var lbl Label
				lbl.UnmarshalEasyJSON(l)
				r.Labels = append(r.Labels, lbl)
				l.WantComma()
			}
			l.Delim(']')
		case "error":
			r.Err = l.String()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (lb Label) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"text":`)
	w.String(lb.Text)
	w.RawString(`,"col":`)
	w.Int(lb.Col)
	w.RawString(`,"row":`)
	w.Int(lb.Row)
	w.RawByte('}')
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (lb *Label) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		field := l.UnsafeFieldName(false)
		l.WantColon()
		switch field {
		case "text":
			lb.Text = l.String()
		case "col":
			lb.Col = l.Int()
		case "row":
			lb.Row = l.Int()
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')
}
