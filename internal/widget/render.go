package widget

import (
	"strings"
	"sync"

	"github.com/RichardoC/support-chat/internal/models"
	"github.com/gosuri/uitable"
)

const minWidth = 20

// Render lays the conversation out in two columns of width/2: assistant
// messages on the left, every other role right-aligned on the right.
func Render(messages []models.Message, width int) string {
	if width < minWidth {
		width = minWidth
	}

	table := uitable.New()
	table.Wrap = true
	table.MaxColWidth = uint(width/2 - 1)
	table.Separator = " "
	table.RightAlign(1)

	for _, m := range messages {
		if m.Role == models.RoleAssistant {
			table.AddRow(m.Content, "")
		} else {
			table.AddRow("", m.Content)
		}
	}
	return table.String()
}

// View keeps a fixed-height window over the rendered conversation, scrolled
// to the newest message each time the conversation changes.
type View struct {
	width  int
	height int
	draw   func(frame string)

	mu     sync.Mutex
	lines  []string
	offset int

	unsubscribe func()
}

// NewView subscribes to conv and calls draw with the visible frame after every
// change. draw may be nil.
func NewView(conv *Conversation, width, height int, draw func(frame string)) *View {
	if height < 1 {
		height = 1
	}
	v := &View{width: width, height: height, draw: draw}
	v.unsubscribe = conv.Subscribe(v.update)
	return v
}

func (v *View) update(messages []models.Message) {
	rendered := Render(messages, v.width)

	v.mu.Lock()
	v.lines = strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	v.offset = 0
	if n := len(v.lines) - v.height; n > 0 {
		v.offset = n
	}
	frame := v.frameLocked()
	v.mu.Unlock()

	if v.draw != nil {
		v.draw(frame)
	}
}

func (v *View) Frame() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameLocked()
}

func (v *View) frameLocked() string {
	end := v.offset + v.height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	return strings.Join(v.lines[v.offset:end], "\n")
}

// Offset is the index of the first visible line.
func (v *View) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

func (v *View) Close() {
	v.unsubscribe()
}
