package listview

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// tabPadding is the minimum column padding for plain output.
const tabPadding = 2

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

// RenderText writes the view for a terminal. Styled output uses Lip Gloss
// borders and colours; plain output is tab-aligned so it can be piped.
// Action buttons are listed by name in a trailing column.
func RenderText(w io.Writer, view View, styled bool) error {
	if view.Empty != nil {
		return renderTextEmpty(w, *view.Empty, styled)
	}
	if view.Variant == VariantGrid {
		return renderTextGrid(w, view, styled)
	}
	if styled {
		return renderStyledTable(w, view)
	}
	return renderPlainTable(w, view)
}

func renderTextEmpty(w io.Writer, e EmptyState, styled bool) error {
	lines := []string{e.Title(), e.Message()}
	if e.Create != nil {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Create.Label, e.Create.Href))
	}
	if styled {
		lines[0] = titleStyle.Render(lines[0])
		for i := 1; i < len(lines); i++ {
			lines[i] = emptyStyle.Render(lines[i])
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func headerLabels(view View) []string {
	labels := make([]string, 0, len(view.Columns)+1)
	for _, h := range view.Columns {
		label := h.Label
		switch h.Sort {
		case "asc":
			label += " ↑"
		case "desc":
			label += " ↓"
		}
		labels = append(labels, label)
	}
	return append(labels, "Actions")
}

func actionNames(buttons []ActionButton) string {
	names := make([]string, len(buttons))
	for i, b := range buttons {
		names[i] = b.Name
	}
	return strings.Join(names, ",")
}

func renderStyledTable(w io.Writer, view View) error {
	rows := make([][]string, len(view.Rows))
	for i, r := range view.Rows {
		row := make([]string, 0, len(r.Cells)+1)
		for _, c := range r.Cells {
			row = append(row, c.Text)
		}
		rows[i] = append(row, actionNames(r.Actions))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headerLabels(view)...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderPlainTable(w io.Writer, view View) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headerLabels(view), "\t"))
	for _, r := range view.Rows {
		fields := make([]string, 0, len(r.Cells)+1)
		for _, c := range r.Cells {
			fields = append(fields, c.Text)
		}
		fields = append(fields, actionNames(r.Actions))
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
	}
	return tw.Flush()
}

func renderTextGrid(w io.Writer, view View, styled bool) error {
	for _, card := range view.Cards {
		var b strings.Builder
		if card.Title != "" {
			b.WriteString(card.Title)
			b.WriteByte('\n')
		}
		for _, f := range card.Fields {
			label := f.Label + ":"
			if styled {
				label = labelStyle.Render(label)
			}
			fmt.Fprintf(&b, "%s %s\n", label, f.Cell.Text)
		}
		if len(card.Actions) > 0 {
			fmt.Fprintf(&b, "[%s]", actionNames(card.Actions))
		}
		body := strings.TrimRight(b.String(), "\n")
		if styled {
			body = cardStyle.Render(body)
		} else {
			body = "- " + card.ID + "\n" + body + "\n"
		}
		if _, err := fmt.Fprintln(w, body); err != nil {
			return err
		}
	}
	return nil
}
