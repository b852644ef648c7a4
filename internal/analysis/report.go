package analysis

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang = language.English

// WriteTo prints r as an aligned table followed by a timing line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	p := message.NewPrinter(lang)

	header := []string{"Level", "Name", "Tiles", "Icons", "Games", "Win %", "Score", "Score SD", "Left", "Left SD", "Open"}
	rows := [][]string{header}
	for _, l := range r.Levels {
		rows = append(rows, []string{
			p.Sprintf("%d", l.Level),
			l.Name,
			p.Sprintf("%d", l.Tiles),
			p.Sprintf("%d", l.Icons),
			p.Sprintf("%d", l.Samples),
			p.Sprintf("%.1f", 100*l.WinRate),
			p.Sprintf("%.0f", l.MeanScore),
			p.Sprintf("%.0f", l.StdScore),
			p.Sprintf("%.1f", l.MeanRemaining),
			p.Sprintf("%.1f", l.StdRemaining),
			p.Sprintf("%.1f", l.MeanOpen),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	for i, row := range rows {
		for j, cell := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[j]-runewidth.StringWidth(cell))
			if j == 1 {
				b.WriteString(cell + pad)
			} else {
				b.WriteString(pad + cell)
			}
		}
		b.WriteString("\n")
		if i == 0 {
			total := len(widths) - 1
			for _, w := range widths {
				total += w + 1
			}
			b.WriteString(strings.Repeat("-", total) + "\n")
		}
	}

	sec := r.Elapsed.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	b.WriteString(p.Sprintf("\n%d games in %.2f seconds (%d games/sec)\n", r.Games, sec, int(float64(r.Games)/sec)))

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
