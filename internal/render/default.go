package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/hoshi/internal/game"
	"git.lost.host/meutraa/hoshi/internal/score"
	"git.lost.host/meutraa/hoshi/internal/session"
	"git.lost.host/meutraa/hoshi/internal/theme"
	"golang.org/x/term"
)

const (
	ColumnSpacing   = 6
	DecorationLife  = 12 // frames
	defaultRows     = 24
	defaultColumns  = 80
	statsColumnGap  = 8
	progressBarSize = 20
)

type DefaultRenderer struct {
	Theme    theme.Theme
	Viewport float64 // pixel height that maps onto the terminal rows

	out          io.Writer
	fd           int
	rows, cols   uint16
	buffer       strings.Builder
	restoreState *term.State

	mu          sync.Mutex
	decorations []*decoration
	line        uint16 // Judgment row of the last frame, 0 before the first

	cur, prev map[cell]struct{}
}

type cell struct {
	row, col uint16
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

func NewDefaultRenderer(out *os.File, viewport float64) *DefaultRenderer {
	r := NewRenderer(out, viewport, defaultRows, defaultColumns)
	r.fd = int(out.Fd())
	return r
}

// NewRenderer writes to any writer with a fixed size. Init is not needed.
func NewRenderer(out io.Writer, viewport float64, rows, cols uint16) *DefaultRenderer {
	return &DefaultRenderer{
		Theme:    &theme.DefaultTheme{},
		Viewport: viewport,
		out:      out,
		fd:       -1,
		rows:     rows,
		cols:     cols,
		cur:      map[cell]struct{}{},
		prev:     map[cell]struct{}{},
	}
}

func (r *DefaultRenderer) Init() error {
	if r.fd < 0 || !term.IsTerminal(r.fd) {
		return nil
	}
	if cols, rows, err := term.GetSize(r.fd); nil == err && rows > 0 && cols > 0 {
		r.rows, r.cols = uint16(rows), uint16(cols)
	}
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	if nil == r.restoreState {
		return nil
	}
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
}

// OnEvent may be called from any goroutine. Hits are marked just above the
// judgment line and misses just below it, both show up on the next Draw.
func (r *DefaultRenderer) OnEvent(ev score.Event) {
	r.mu.Lock()
	line := r.line
	r.mu.Unlock()
	if line == 0 {
		line = r.rows
	}

	switch e := ev.(type) {
	case score.HitResolved:
		r.AddDecoration(r.LaneColumn(e.Note.Lane), line-1, r.Theme.RenderHit(e.Note.Kind), DecorationLife)
	case score.MissResolved:
		r.AddDecoration(r.LaneColumn(e.Lane), line+1, r.Theme.RenderMiss(), DecorationLife)
	}
}

func (r *DefaultRenderer) tickDecorations() {
	r.mu.Lock()
	defer r.mu.Unlock()
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			continue
		}
		r.mark(d.Y, d.X)
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// Row maps a pixel position onto a 1-based terminal row, ok is false when
// the position is off screen.
func (r *DefaultRenderer) Row(y float64) (uint16, bool) {
	if y < 0 || r.Viewport <= 0 {
		return 0, false
	}
	row := int(y/r.Viewport*float64(r.rows)) + 1
	if row > int(r.rows) {
		return 0, false
	}
	return uint16(row), true
}

func (r *DefaultRenderer) LaneColumn(lane int) uint16 {
	mc := int(r.cols)/2 - (game.LaneCount*ColumnSpacing)/2
	if mc < 1 {
		mc = 1
	}
	return uint16(mc + lane*ColumnSpacing + ColumnSpacing/2)
}

func (r *DefaultRenderer) Draw(snap session.Snapshot) {
	line, ok := r.Row(snap.JudgmentLine)
	if !ok {
		line = r.rows
	}
	for lane := 0; lane < game.LaneCount; lane++ {
		col := r.LaneColumn(lane)
		r.mark(line, col-1)
		r.mark(line, col)
		r.mark(line, col+1)
		r.Fill(line, col-1, strings.Repeat(r.Theme.RenderHitField(lane), 3))
	}

	for _, n := range snap.Notes {
		row, ok := r.Row(n.Y)
		if !ok || row == line {
			continue
		}
		col := r.LaneColumn(n.Lane)
		r.mark(row, col)
		r.Fill(row, col, r.Theme.RenderNote(n.Kind))
	}

	r.mu.Lock()
	r.line = line
	r.mu.Unlock()

	r.drawStats(snap)
	r.tickDecorations()
	r.flush()
}

func (r *DefaultRenderer) drawStats(snap session.Snapshot) {
	col := r.LaneColumn(game.LaneCount-1) + statsColumnGap
	r.Fill(2, col, fmt.Sprintf("score   %8d / %d", snap.Score, snap.Target))
	r.Fill(3, col, fmt.Sprintf("combo   %8d", snap.Combo))
	row := uint16(4)
	for i, c := range game.Colors {
		r.FillColor(row+uint16(i), col, r.Theme.GetColor(c), fmt.Sprintf("%-7v %8d", c, snap.ColorCombos.Get(c)))
	}
	row += uint16(len(game.Colors)) + 1
	r.Fill(row, col, progress(snap.Elapsed, snap.Duration))
	if snap.Cleared {
		r.Fill(row+1, col, "\033[1;32mCLEAR\033[0m")
	}
}

func progress(elapsed, duration time.Duration) string {
	filled := 0
	if duration > 0 {
		filled = int(float64(elapsed) / float64(duration) * progressBarSize)
	}
	if filled > progressBarSize {
		filled = progressBarSize
	}
	return fmt.Sprintf("[%s%s] %5.1fs",
		strings.Repeat("#", filled),
		strings.Repeat("-", progressBarSize-filled),
		elapsed.Seconds(),
	)
}

func (r *DefaultRenderer) mark(row, col uint16) {
	r.cur[cell{row, col}] = struct{}{}
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

// flush blanks cells drawn last frame but not this one, then writes the
// frame in a single call.
func (r *DefaultRenderer) flush() {
	var blank strings.Builder
	for c := range r.prev {
		if _, ok := r.cur[c]; ok {
			continue
		}
		blank.WriteString("\033[")
		blank.WriteString(strconv.FormatInt(int64(c.row), 10))
		blank.WriteString(";")
		blank.WriteString(strconv.FormatInt(int64(c.col), 10))
		blank.WriteString("H ")
	}
	r.prev, r.cur = r.cur, r.prev
	for c := range r.cur {
		delete(r.cur, c)
	}

	r.out.Write([]byte(blank.String() + r.buffer.String()))
	r.buffer.Reset()
}

func PrintResult(w io.Writer, res session.Result) {
	status := "FAILED"
	if res.Cleared {
		status = "CLEAR"
	}
	fmt.Fprintf(w, "score %d  grade %v  %v\n", res.FinalScore, res.Grade, status)
	fmt.Fprintf(w, "notes %d  hits %d  tapped %d  expired %d\n",
		res.Stats.Notes, res.Stats.Hits, res.Stats.Tapped, res.Stats.Expired)
}
