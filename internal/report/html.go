package report

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spacesedan/sentiscope/internal/aggregate"
	"github.com/spacesedan/sentiscope/internal/charts"
	"github.com/spacesedan/sentiscope/internal/models"
)

const (
	barChartWidth  = 420
	barChartHeight = 180
	radarSize      = 360
)

const reportCSS = `body{margin:0;background:#fff;font-family:Helvetica,Arial,sans-serif;color:#1f2937}
#report{max-width:960px;margin:0 auto;padding:32px}
h1{font-size:28px;margin:0 0 4px} .month{color:#6b7280;margin:0 0 24px}
.cards{display:grid;grid-template-columns:repeat(4,1fr);gap:16px;margin-bottom:24px}
.card{border:1px solid #e5e7eb;border-radius:8px;padding:16px} .card b{display:block;font-size:24px}
.row{display:grid;grid-template-columns:1fr 1fr;gap:24px;margin-bottom:24px}
.panel{border:1px solid #e5e7eb;border-radius:8px;padding:16px}
.panel h2{font-size:18px;margin:0 0 8px} .panel p{font-size:13px;color:#6b7280}
.markdown table{border-collapse:collapse;width:100%;font-size:13px}
.markdown th,.markdown td{border:1px solid #d1d5db;padding:4px 8px;text-align:left}`

// Markdown renders the textual part of the report: the summary sentence and a per-aspect table.
func Markdown(r models.Report) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString(aggregate.SummaryText(r.Summary))
	b.WriteString("\n\n")

	if len(r.Aspects) == 0 {
		b.WriteString("_No aspects were mentioned._\n")
		return b.String()
	}

	b.WriteString("| Aspect | Positive | Neutral | Negative | Mentions |\n|---|---|---|---|---|\n")
	for _, a := range r.Aspects {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d |\n",
			escapeCell(a.Name), a.Positive, a.Neutral, a.Negative, a.Mentions())
	}
	return b.String()
}

// HTML renders the full report page that gets rasterized for export.
func HTML(r models.Report) (string, error) {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(r)), &body); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset='utf-8'><title>SentiScope Report</title><style>")
	b.WriteString(reportCSS)
	b.WriteString("</style></head><body><div id='report'>")
	b.WriteString("<h1>Sentiment Report</h1>")
	fmt.Fprintf(&b, "<p class='month'>%s</p>", html.EscapeString(r.GeneratedAt.Format("January 2006")))

	b.WriteString("<div class='cards'>")
	writeCard(&b, "Total mentions", r.Summary.Total)
	writeCard(&b, "Positive", r.Summary.Positive)
	writeCard(&b, "Neutral", r.Summary.Neutral)
	writeCard(&b, "Negative", r.Summary.Negative)
	b.WriteString("</div>")

	b.WriteString("<div class='row'>")
	b.WriteString("<div class='panel'><h2>Overall sentiment</h2>")
	b.WriteString(BarSVG(charts.Labels[:], r.Donut[:], charts.Colors[:]))
	b.WriteString("</div><div class='panel'><h2>Aspect mentions</h2>")
	b.WriteString(RadarSVG(r.Radar))
	b.WriteString("</div></div>")

	fmt.Fprintf(&b, "<div class='markdown'>%s</div>", body.String())

	for i, bar := range r.Bars {
		if i%2 == 0 {
			if i > 0 {
				b.WriteString("</div>")
			}
			b.WriteString("<div class='row'>")
		}
		fmt.Fprintf(&b, "<div class='panel'><h2>%s Analysis</h2><p>%s</p>",
			html.EscapeString(bar.Name), html.EscapeString(aggregate.AspectText(r.Aspects[i])))
		b.WriteString(BarSVG(charts.Labels[:], bar.Counts[:], charts.Colors[:]))
		b.WriteString("</div>")
	}
	if len(r.Bars) > 0 {
		b.WriteString("</div>")
	}

	b.WriteString("</div></body></html>")
	return b.String(), nil
}

// BarSVG draws one vertical bar per value, scaled to the largest value.
func BarSVG(labels []string, values []int, colors []string) string {
	maxVal := 0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d'>", barChartWidth, barChartHeight+20)
	slot := barChartWidth / max(len(values), 1)
	for i, v := range values {
		h := 0
		if maxVal > 0 {
			h = v * barChartHeight / maxVal
		}
		x := i*slot + slot/4
		fmt.Fprintf(&b, "<rect x='%d' y='%d' width='%d' height='%d' fill='%s'/>",
			x, barChartHeight-h, slot/2, h, colors[i%len(colors)])
		fmt.Fprintf(&b, "<text x='%d' y='%d' font-size='12' text-anchor='middle'>%s (%d)</text>",
			i*slot+slot/2, barChartHeight+15, html.EscapeString(labels[i%len(labels)]), v)
	}
	b.WriteString("</svg>")
	return b.String()
}

// RadarSVG draws the mentions series as a closed polygon, one spoke per aspect.
func RadarSVG(radar models.RadarSeries) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d'>", radarSize, radarSize)
	if len(radar.Series) == 0 {
		b.WriteString("</svg>")
		return b.String()
	}

	maxVal := 0
	for _, v := range radar.Series {
		maxVal = max(maxVal, v)
	}
	center := float64(radarSize) / 2
	radius := center - 40

	points := make([]string, 0, len(radar.Series))
	for i, v := range radar.Series {
		angle := 2*math.Pi*float64(i)/float64(len(radar.Series)) - math.Pi/2
		r := 0.0
		if maxVal > 0 {
			r = radius * float64(v) / float64(maxVal)
		}
		points = append(points, fmt.Sprintf("%.1f,%.1f", center+r*math.Cos(angle), center+r*math.Sin(angle)))

		lx, ly := center+(radius+20)*math.Cos(angle), center+(radius+20)*math.Sin(angle)
		fmt.Fprintf(&b, "<line x1='%.1f' y1='%.1f' x2='%.1f' y2='%.1f' stroke='#e5e7eb'/>",
			center, center, center+radius*math.Cos(angle), center+radius*math.Sin(angle))
		fmt.Fprintf(&b, "<text x='%.1f' y='%.1f' font-size='11' text-anchor='middle'>%s</text>",
			lx, ly, html.EscapeString(radar.Labels[i]))
	}
	fmt.Fprintf(&b, "<polygon points='%s' fill='rgba(99,102,241,0.2)' stroke='#6366f1' stroke-width='2'/>",
		strings.Join(points, " "))
	b.WriteString("</svg>")
	return b.String()
}

func writeCard(b *strings.Builder, title string, value int) {
	fmt.Fprintf(b, "<div class='card'>%s<b>%d</b></div>", html.EscapeString(title), value)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
