package pages

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"venueadmin/internal/application/listview"
	"venueadmin/internal/application/money"
)

// Display formats.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// badge renders a status as a coloured pill in HTML and as plain text elsewhere.
func badge(status string) listview.Cell {
	return listview.Cell{
		Text: status,
		HTML: template.HTML(`<span class="badge badge-` + template.HTMLEscapeString(status) + `">` +
			template.HTMLEscapeString(status) + `</span>`), // #nosec G203 -- both parts escaped
	}
}

func yesNo(b bool) listview.Cell {
	if b {
		return badge("active")
	}
	return badge("inactive")
}

// Formatting is bound to the page set so every column uses the configured
// currency and time zone.
type formatter struct {
	money    money.Formatter
	location *time.Location
}

func (f formatter) cents(c int64) listview.Cell {
	return listview.Cell{Text: f.money.Format(c)}
}

func (f formatter) dateTime(t time.Time) listview.Cell {
	if t.IsZero() {
		return listview.Cell{}
	}
	return listview.Cell{Text: t.In(f.location).Format(dateTimeLayout)}
}

func (f formatter) date(t time.Time) listview.Cell {
	if t.IsZero() {
		return listview.Cell{}
	}
	return listview.Cell{Text: t.In(f.location).Format(dateLayout)}
}

// duration renders 90m as "1h30".
func duration(d time.Duration) listview.Cell {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	var b strings.Builder
	if h > 0 {
		b.WriteString(strconv.Itoa(h))
		b.WriteByte('h')
	}
	if m > 0 {
		if h > 0 && m < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(m))
		if h == 0 {
			b.WriteString("min")
		}
	}
	return listview.Cell{Text: b.String()}
}

// unixValue sorts times chronologically regardless of zone.
func unixValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
