package rtlog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/joeycumines/logiface"
)

type (
	// Event is a minimal logiface.Event: a level plus an ordered list of
	// key/value fields. It embeds UnimplementedEvent per the interface's
	// contract, implementing only the mandatory methods and the few
	// optional typed adders the runtime actually uses.
	Event struct {
		logiface.UnimplementedEvent
		lvl    logiface.Level
		msg    string
		fields []field
	}

	field struct {
		key string
		val any
	}

	// Factory implements logiface.EventFactory[*Event].
	Factory struct{}

	// Writer implements logiface.Writer[*Event], rendering each event as
	// a single tab-separated line of key=value pairs.
	Writer struct {
		mu  sync.Mutex
		out io.Writer
	}
)

var (
	_ logiface.Event               = (*Event)(nil)
	_ logiface.EventFactory[*Event] = Factory{}
	_ logiface.Writer[*Event]       = (*Writer)(nil)
)

func (e *Event) Level() logiface.Level { return e.lvl }

func (e *Event) AddField(key string, val any) {
	e.fields = append(e.fields, field{key: key, val: val})
}

func (e *Event) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

func (e *Event) AddString(key, val string) bool {
	e.AddField(key, val)
	return true
}

func (e *Event) AddFloat64(key string, val float64) bool {
	e.AddField(key, val)
	return true
}

func (e *Event) AddFloat32(key string, val float32) bool {
	e.AddField(key, val)
	return true
}

func (e *Event) AddInt(key string, val int) bool {
	e.AddField(key, val)
	return true
}

func (e *Event) AddUint64(key string, val uint64) bool {
	e.AddField(key, val)
	return true
}

func (Factory) NewEvent(level logiface.Level) *Event {
	return &Event{lvl: level}
}

// NewWriter builds a Writer that renders events to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Write(event *Event) error {
	var b strings.Builder
	b.WriteString(event.lvl.String())
	if event.msg != "" {
		b.WriteByte('\t')
		b.WriteString(event.msg)
	}
	keys := make([]string, 0, len(event.fields))
	for _, f := range event.fields {
		keys = append(keys, f.key)
	}
	sort.Strings(keys)
	byKey := make(map[string]any, len(event.fields))
	for _, f := range event.fields {
		byKey[f.key] = f.val
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "\t%s=%v", k, byKey[k])
	}
	b.WriteByte('\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.out, b.String())
	return err
}
