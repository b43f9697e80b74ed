package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/term"
)

const defaultBarWidth = 40

// Bar renders a Tracker as a single progress line:
//
//	[==========          ] 5/10 (50%) eta 12s
//
// On a terminal the line is redrawn in place; otherwise each update is
// written on its own line.
type Bar struct {
	w       io.Writer
	tracker *Tracker
	width   int
	inPlace bool
}

func NewBar(w io.Writer, tracker *Tracker) *Bar {
	b := &Bar{
		w:       w,
		tracker: tracker,
		width:   defaultBarWidth,
	}
	if fd, ok := terminalFd(w); ok {
		b.inPlace = true
		if cols, _, err := term.GetSize(fd); err == nil {
			// Leave room for the counters after the bar.
			if avail := cols - 40; avail < b.width {
				b.width = max(avail, 10)
			}
		}
	}
	return b
}

// Update redraws the line with the tracker's current state.
func (b *Bar) Update() {
	if b.inPlace {
		fmt.Fprintf(b.w, "\r%s", b.String())
		return
	}
	fmt.Fprintln(b.w, b.String())
}

// Finish terminates an in-place line.
func (b *Bar) Finish() {
	if b.inPlace {
		fmt.Fprintln(b.w)
	}
}

func (b *Bar) String() string {
	t := b.tracker
	filled := int(t.Ratio() * float64(b.width))
	if filled > b.width {
		filled = b.width
	}

	return fmt.Sprintf("[%s%s] %d/%d (%.0f%%) eta %s",
		strings.Repeat("=", filled),
		strings.Repeat(" ", b.width-filled),
		t.Completed(), t.Total(),
		t.Ratio()*100,
		FormatETA(t),
	)
}

// FormatETA formats the tracker's ETA, or "--" before anything completed.
func FormatETA(t *Tracker) string {
	if t.Completed() == 0 && !t.Done() {
		return "--"
	}
	d := t.ETA().Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
