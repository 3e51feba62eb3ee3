package ink

// Session holds the committed strokes of one annotation surface.
// It is owned by a Controller and not safe for concurrent use.
type Session struct {
	strokes []Stroke
}

// Len returns the number of committed strokes.
func (s *Session) Len() int { return len(s.strokes) }

// Strokes returns a copy of the committed strokes in drawing order.
func (s *Session) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	for i, st := range s.strokes {
		out[i] = st.Clone()
	}
	return out
}

func (s *Session) commit(st Stroke) {
	s.strokes = append(s.strokes, st)
}

// removeWhere drops every stroke matching fn and returns how many went.
func (s *Session) removeWhere(fn func(*Stroke) bool) int {
	kept := s.strokes[:0]
	removed := 0
	for i := range s.strokes {
		if fn(&s.strokes[i]) {
			removed++
			continue
		}
		kept = append(kept, s.strokes[i])
	}
	for i := len(kept); i < len(s.strokes); i++ {
		s.strokes[i] = Stroke{}
	}
	s.strokes = kept
	return removed
}

func (s *Session) clear() {
	s.strokes = nil
}
