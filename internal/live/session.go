package live

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"elementhub/internal/display"
	"elementhub/internal/elements"
	"elementhub/internal/filter"
)

// Session is the per-connection presentation state: one filter set and one
// active atomic number. Sessions never share state with each other.
type Session struct {
	ID      string
	svc     *elements.Service
	filters filter.Set
	active  int
}

func NewSession(svc *elements.Service) *Session {
	return &Session{ID: uuid.NewString(), svc: svc}
}

// Snapshot renders the current table.
func (s *Session) Snapshot() ServerMessage {
	t := s.svc.Table(s.filters, s.active)
	counts := t.Counts()
	summary := display.Summarize(s.filters)
	fs := s.filters
	return ServerMessage{
		Type:    TypeTable,
		Session: s.ID,
		Filters: &fs,
		Summary: &summary,
		Counts:  &counts,
		Table:   &t,
	}
}

// Apply updates the session from msg and returns the reply. A rejected
// message leaves the session unchanged.
func (s *Session) Apply(msg ClientMessage) ServerMessage {
	switch msg.Type {
	case TypeFilters:
		fs := filter.Set{}
		if p := msg.Filters; p != nil {
			var err error
			fs, err = filter.Parse(p.Categories, p.States, p.Periods, p.Blocks)
			if err != nil {
				return s.errorMessage(err)
			}
		}
		s.filters = fs
	case TypeSelect:
		if msg.AtomicNumber < 0 {
			return s.errorMessage(errors.New("atomic_number must not be negative"))
		}
		s.active = msg.AtomicNumber
	case TypeClear:
		s.filters = filter.Set{}
		s.active = 0
	default:
		return s.errorMessage(errors.Newf("unknown message type %q", msg.Type))
	}
	return s.Snapshot()
}

// HandleRaw decodes one JSON message and applies it.
func (s *Session) HandleRaw(b []byte) ServerMessage {
	var msg ClientMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		return s.errorMessage(errors.Wrap(err, "decode message"))
	}
	return s.Apply(msg)
}

func (s *Session) errorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Session: s.ID, Error: err.Error()}
}
