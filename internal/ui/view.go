package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/A-LKT/DiskPeek/internal/domain"
	"github.com/A-LKT/DiskPeek/internal/treemap"
)

var blockPalette = []lipgloss.Color{
	"25", "61", "97", "133", "169", "205", "31", "67", "103", "139",
}

type uiStyles struct {
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	warnStyle   lipgloss.Style
	emptyStyle  lipgloss.Style
}

func defaultStyles() uiStyles {
	return uiStyles{
		headerStyle: lipgloss.NewStyle().Bold(true),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		emptyStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (model Model) View() string {
	styles := defaultStyles()
	if model.showHelp {
		return renderHelpView(model, styles)
	}

	lines := []string{renderHeader(model, styles)}
	if model.staleNote != "" {
		lines = append(lines, styles.warnStyle.Render(trimLine(model.staleNote, model.width)))
	}
	lines = append(lines, renderTreemap(model))
	lines = append(lines, renderFooter(model, styles))
	return strings.Join(lines, "\n")
}

func renderHeader(model Model, styles uiStyles) string {
	if model.current == nil {
		return styles.headerStyle.Render("DiskPeek")
	}
	header := fmt.Sprintf("%s  %s  %d files, %d dirs",
		model.current.Path,
		humanize.IBytes(uint64(model.current.Size)),
		model.current.FileCount,
		model.current.DirCount,
	)
	return styles.headerStyle.Render(trimLine(header, model.width))
}

// renderTreemap paints the laid-out rectangles as runs of colored cells,
// one styled run per contiguous stretch of the same block in a row. The
// block's name and size are written into its top row when it is wide
// enough.
func renderTreemap(model Model) string {
	width := model.width
	height := model.bodyHeight()
	if model.current == nil || len(model.placed) == 0 {
		empty := defaultStyles().emptyStyle
		filler := make([]string, height)
		for i := range filler {
			filler[i] = empty.Render(strings.Repeat("·", maxInt(width, 1)))
		}
		return strings.Join(filler, "\n")
	}

	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}
	labels := make([][]rune, height)
	for y := range labels {
		labels[y] = make([]rune, width)
	}

	for index, placed := range model.placed {
		x0, y0, x1, y1 := cellBounds(placed.Rect, width, height)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = index
			}
		}
		if y1 > y0 && x1-x0 >= 4 {
			label := blockLabel(placed.Node, x1-x0)
			for i, r := range label {
				if x0+i >= x1 {
					break
				}
				labels[y0][x0+i] = r
			}
		}
	}

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		x := 0
		for x < width {
			index := grid[y][x]
			run := x
			for run < width && grid[y][run] == index {
				run++
			}
			var text strings.Builder
			for cell := x; cell < run; cell++ {
				if labels[y][cell] != 0 {
					text.WriteRune(labels[y][cell])
				} else {
					text.WriteRune(' ')
				}
			}
			row.WriteString(blockStyle(index, index == model.selected).Render(text.String()))
			x = run
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

func blockStyle(index int, selected bool) lipgloss.Style {
	if index < 0 {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle().
		Background(blockPalette[index%len(blockPalette)]).
		Foreground(lipgloss.Color("255"))
	if selected {
		style = style.Bold(true).Reverse(true)
	}
	return style
}

func blockLabel(node *domain.Node, width int) string {
	label := fmt.Sprintf(" %s %s", node.Name, humanize.IBytes(uint64(node.Size)))
	if !node.FullyLoaded && node.IsDir {
		label += " …"
	}
	// Truncation must not split a multibyte rune; names and the partial
	// marker are not ASCII.
	if runes := []rune(label); len(runes) > width {
		label = string(runes[:width])
	}
	return label
}

// cellBounds converts layout coordinates to integer cell bounds, clamped to
// the grid.
func cellBounds(rect treemap.Rect, width, height int) (int, int, int, int) {
	x0 := clampInt(int(rect.X+0.5), 0, width)
	y0 := clampInt(int(rect.Y+0.5), 0, height)
	x1 := clampInt(int(rect.X+rect.W+0.5), 0, width)
	y1 := clampInt(int(rect.Y+rect.H+0.5), 0, height)
	return x0, y0, x1, y1
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func renderFooter(model Model, styles uiStyles) string {
	status := model.status
	if model.scanning || model.deepening {
		status = model.spin.View() + " " + status
	}
	statusStyle := styles.mutedStyle
	if strings.Contains(strings.ToLower(model.status), "fail") || strings.Contains(strings.ToLower(model.status), "warning") {
		statusStyle = styles.warnStyle
	}
	selection := ""
	if node := model.selectedNode(); node != nil {
		selection = fmt.Sprintf("Selected: %s (%s)", node.Name, humanize.IBytes(uint64(node.Size)))
	}
	keys := "←/→ select  enter drill  backspace up  r rescan  x clear cache  ? help  q quit"
	statusLine := statusStyle.Render(trimLine(status, model.width))
	footer := padLine(selection, keys, model.width)
	return statusLine + "\n" + styles.mutedStyle.Render(footer)
}

func renderHelpView(model Model, styles uiStyles) string {
	lines := []string{
		styles.headerStyle.Render("DiskPeek keys"),
		"",
		"  ←/↑        previous block",
		"  →/↓        next block",
		"  enter      drill into directory (loads deeper levels on demand)",
		"  backspace  parent directory / cancel running scan",
		"  r          rescan from the root",
		"  x          delete the cached scan for this volume",
		"  ?          close help",
		"  q          quit",
		"",
		styles.mutedStyle.Render("Blocks are sized by exact subtree byte totals; an ellipsis marks"),
		styles.mutedStyle.Render("directories whose deeper levels are not materialized yet."),
	}
	return strings.Join(lines, "\n")
}

func trimLine(line string, width int) string {
	runes := []rune(line)
	if width <= 0 || len(runes) <= width {
		return line
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func padLine(left, right string, width int) string {
	gap := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
