package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wirechain/pkg/pipeline"
	"github.com/matzehuels/wirechain/pkg/topology"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(2)
)

// maxPreview is how many vertices a row shows before eliding.
const maxPreview = 8

// SegmentListModel is the bubbletea model for browsing segments.
type SegmentListModel struct {
	Title  string
	Result *pipeline.Result
	Cursor int
	Height int
	Offset int
	// Expanded shows the full vertex list of the segment under the cursor.
	Expanded bool
}

// NewSegmentListModel creates a segment browser for res.
func NewSegmentListModel(title string, res *pipeline.Result) SegmentListModel {
	return SegmentListModel{
		Title:  title,
		Result: res,
		Height: 15,
	}
}

func (m SegmentListModel) count() int { return m.Result.Decomposition.Len() }

func (m SegmentListModel) Init() tea.Cmd {
	return nil
}

func (m SegmentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.count()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = m.count() - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SegmentListModel) View() string {
	var b strings.Builder
	d := m.Result.Decomposition

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d vertices, %d edges, %d segments",
		m.Result.Stats.Vertices, m.Result.Stats.Edges, d.Len())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > d.Len() {
		end = d.Len()
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		seg := d.Segment(i)
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(i),
			segmentShape(d.IsClosed(i)),
			strconv.Itoa(segmentEdges(seg, d.IsClosed(i))),
			endpointKinds(m.Result.Graph, seg, d.IsClosed(i)),
			preview(seg, maxPreview),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Shape", "Edges", "Ends", "Vertices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if d.IsClosed(idx) {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Expanded && m.Cursor < d.Len() {
		seg := d.Segment(m.Cursor)
		b.WriteString(listDetailStyle.Render(preview(seg, len(seg))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, d.Len())))

	return b.String()
}

func segmentShape(closed bool) string {
	if closed {
		return "cycle"
	}
	return "open"
}

func segmentEdges(seg []int, closed bool) int {
	if closed {
		return len(seg)
	}
	return len(seg) - 1
}

// endpointKinds describes the two ends of an open segment, e.g. "leaf-branch".
func endpointKinds(g *topology.Graph, seg []int, closed bool) string {
	if closed || g == nil || len(seg) == 0 {
		return "—"
	}
	return g.Kind(seg[0]).String() + "-" + g.Kind(seg[len(seg)-1]).String()
}

// preview joins up to limit vertices with arrows, eliding the middle.
func preview(seg []int, limit int) string {
	if len(seg) <= limit {
		return joinInts(seg)
	}
	head := limit / 2
	tail := limit - head
	return joinInts(seg[:head]) + " → … → " + joinInts(seg[len(seg)-tail:])
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " → ")
}
