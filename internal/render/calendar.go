package render

import (
	"fmt"
	"strings"
	"time"

	lunar "github.com/6tail/lunar-go/calendar"
)

// calendarDay is one cell of the calendar dropdown. Serialized into the
// page's JavaScript, so the json tags are part of the page contract.
type calendarDay struct {
	Day         int    `json:"day"`
	LunarDay    string `json:"lunar_day"`
	IsClickable bool   `json:"is_clickable"`
}

// calendarMonth is one month's grid, weeks of seven cells, nil for padding
type calendarMonth struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Calendar [][]*calendarDay `json:"calendar"`
}

// buildYearCalendar precomputes every month of the page's year with lunar
// day labels. Clickable range is [start, pageDate]: dates with an archived
// page to navigate to. Using the page's own date as the upper bound keeps
// archived pages byte-reproducible no matter when they are regenerated.
func buildYearCalendar(year int, start, pageDate time.Time) []calendarMonth {
	months := make([]calendarMonth, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, buildMonth(year, int(m), start, pageDate))
	}
	return months
}

func buildMonth(year, month int, start, pageDate time.Time) calendarMonth {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][]*calendarDay
	week := make([]*calendarDay, 7)

	col := int(first.Weekday()) // Sunday-first grid
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		week[col] = &calendarDay{
			Day:         day,
			LunarDay:    lunarDayLabel(year, month, day),
			IsClickable: !date.Before(dateOnly(start)) && !date.After(dateOnly(pageDate)),
		}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*calendarDay, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}

	return calendarMonth{Year: year, Month: month, Calendar: weeks}
}

// lunarDayLabel is the lunar date shown under the solar day. The first day
// of a lunar month shows the month name instead, the usual calendar style.
func lunarDayLabel(year, month, day int) string {
	l := lunar.NewSolarFromYmd(year, month, day).GetLunar()
	if l.GetDay() == 1 {
		return l.GetMonthInChinese() + "月"
	}
	return l.GetDayInChinese()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// calendarWeeksHTML renders the server-side grid for the page's own month.
// Other months are re-rendered client-side from the embedded JSON.
func calendarWeeksHTML(cm calendarMonth, pageDate time.Time, ctx urlPrefixer) string {
	var b strings.Builder
	py, pm, pd := pageDate.Date()

	for _, week := range cm.Calendar {
		b.WriteString(`<div class="calendar-week">`)
		for _, cell := range week {
			if cell == nil {
				b.WriteString(`<div class="calendar-day empty"></div>`)
				continue
			}

			todayClass := ""
			if cm.Year == py && cm.Month == int(pm) && cell.Day == pd {
				todayClass = " today"
			}
			disabledClass := ""
			onclick := ""
			if cell.IsClickable {
				dateStr := fmt.Sprintf("%04d-%02d-%02d", cm.Year, cm.Month, cell.Day)
				onclick = fmt.Sprintf(` onclick="navigateToDate('%s%s.html')"`, ctx.ArchivePrefix(), dateStr)
			} else {
				disabledClass = " disabled"
			}

			fmt.Fprintf(&b, `<div class="calendar-day%s%s"%s><div class="solar-day">%d</div><div class="lunar-day">%s</div></div>`,
				todayClass, disabledClass, onclick, cell.Day, cell.LunarDay)
		}
		b.WriteString(`</div>`)
	}

	return b.String()
}

// urlPrefixer is the part of LinkContext the calendar needs
type urlPrefixer interface {
	ArchivePrefix() string
}
