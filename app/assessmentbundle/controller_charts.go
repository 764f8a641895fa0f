package assessmentbundle

import (
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"therapist_dashboard/app/core"
)

const (
	chartWidth  = 1000
	chartHeight = 640

	chartMarginLeft   = 70.0
	chartMarginRight  = 180.0
	chartMarginTop    = 60.0
	chartMarginBottom = 70.0

	chartLegendLimit = 15
)

// qualitative palette, one color per client series
var seriesColors = []string{
	"#8DD3C7", "#BC80BD", "#FB8072", "#80B1D3", "#FDB462",
	"#B3DE69", "#FCCDE5", "#2B83BA", "#D7191C", "#756BB1",
}

// RenderTrajectoryChart draws one line per client over session numbers with
// the instrument's severity bands shaded behind the data. Clients with a
// single entry become a lone marker. When more than one client is present a
// grey dashed average line is added.
func RenderTrajectoryChart(set TrajectorySet, field ScoreField, title string) image.Image {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	setChartFontFace(dc, 13)

	dc.SetRGB(0, 0, 0)
	setChartFontFace(dc, 18)
	dc.DrawStringAnchored(title, chartWidth/2, 24, 0.5, 0.5)
	setChartFontFace(dc, 13)

	if set.MaxSession == 0 {
		dc.DrawStringAnchored("No data available for this selection", chartWidth/2, chartHeight/2, 0.5, 0.5)
		return dc.Image()
	}

	plotLeft := chartMarginLeft
	plotRight := float64(chartWidth) - chartMarginRight
	plotTop := chartMarginTop
	plotBottom := float64(chartHeight) - chartMarginBottom

	yMax := field.Max
	if set.MaxValue > yMax {
		yMax = set.MaxValue
	}
	if yMax <= 0 {
		yMax = 10
	}
	xMin := 0.5
	xMax := float64(set.MaxSession) + 0.5

	px := func(session float64) float64 {
		return plotLeft + (session-xMin)/(xMax-xMin)*(plotRight-plotLeft)
	}
	py := func(value float64) float64 {
		return plotBottom - value/yMax*(plotBottom-plotTop)
	}

	// severity bands behind everything else
	for _, band := range field.Bands {
		if band.Lower > yMax {
			continue
		}
		upper := math.Min(band.Upper, yMax)
		r, g, b := hexToRGB(band.Color)
		dc.SetRGBA(r, g, b, 0.25)
		dc.DrawRectangle(plotLeft, py(upper), plotRight-plotLeft, py(band.Lower)-py(upper))
		dc.Fill()

		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(band.Label, plotRight+6, (py(upper)+py(band.Lower))/2, 0, 0.35)
	}

	// axes
	dc.SetRGB(0.25, 0.25, 0.25)
	dc.SetLineWidth(1)
	dc.DrawLine(plotLeft, plotTop, plotLeft, plotBottom)
	dc.DrawLine(plotLeft, plotBottom, plotRight, plotBottom)
	dc.Stroke()

	for session := 1; session <= set.MaxSession; session++ {
		x := px(float64(session))
		dc.DrawLine(x, plotBottom, x, plotBottom+4)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.Itoa(session), x, plotBottom+14, 0.5, 0.5)
	}

	yStep := math.Ceil(yMax / 6)
	if yStep < 1 {
		yStep = 1
	}
	for value := 0.0; value <= yMax; value += yStep {
		y := py(value)
		dc.DrawLine(plotLeft-4, y, plotLeft, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%g", value), plotLeft-8, y, 1, 0.35)
	}

	dc.DrawStringAnchored("Session Number", (plotLeft+plotRight)/2, plotBottom+36, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, 18, (plotTop+plotBottom)/2)
	dc.DrawStringAnchored(field.Label, 18, (plotTop+plotBottom)/2, 0.5, 0.5)
	dc.Pop()

	// client series
	for i, client := range set.Clients {
		dc.SetHexColor(seriesColors[i%len(seriesColors)])

		if len(client.Entries) > 1 {
			dc.SetLineWidth(2)
			for j, entry := range client.Entries {
				x := px(float64(entry.SessionNumber))
				y := py(entry.Value)
				if j == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
		}

		// a single entry still shows up, as a point instead of a line
		for _, entry := range client.Entries {
			dc.DrawCircle(px(float64(entry.SessionNumber)), py(entry.Value), 4)
			dc.Fill()
		}
	}

	// average trajectory
	if len(set.Average) > 1 {
		dc.SetRGB(0.45, 0.45, 0.45)
		dc.SetLineWidth(3)
		dc.SetDash(6, 4)
		for j, point := range set.Average {
			x := px(float64(point.SessionNumber))
			y := py(point.Value)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		dc.SetDash()
		for _, point := range set.Average {
			dc.DrawCircle(px(float64(point.SessionNumber)), py(point.Value), 5)
			dc.Fill()
		}
	}

	// legend, hidden for crowded charts like in the original dashboard
	if len(set.Clients) <= chartLegendLimit {
		legendX := plotRight + 70
		legendY := plotTop
		for i, client := range set.Clients {
			dc.SetHexColor(seriesColors[i%len(seriesColors)])
			dc.DrawLine(legendX, legendY, legendX+18, legendY)
			dc.SetLineWidth(3)
			dc.Stroke()
			dc.SetRGB(0.1, 0.1, 0.1)
			dc.DrawStringAnchored(client.ClientCode, legendX+24, legendY, 0, 0.35)
			legendY += 18
		}
		if len(set.Average) > 1 {
			dc.SetRGB(0.45, 0.45, 0.45)
			dc.DrawLine(legendX, legendY, legendX+18, legendY)
			dc.SetLineWidth(3)
			dc.Stroke()
			dc.SetRGB(0.1, 0.1, 0.1)
			dc.DrawStringAnchored("Average", legendX+24, legendY, 0, 0.35)
		}
	}

	return dc.Image()
}

// setChartFontFace switches to the configured TTF when there is one; the
// default bitmap face is kept otherwise.
func setChartFontFace(dc *gg.Context, points float64) {
	if core.Config.Server.ChartFontFile == "" {
		return
	}
	face, err := loadFontFace(core.Config.Server.ChartFontFile, points)
	if err != nil {
		log.Println(err)
		return
	}
	dc.SetFontFace(face)
}

func loadFontFace(path string, points float64) (font.Face, error) {
	fontBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, nil
}

func hexToRGB(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0.5, 0.5, 0.5
	}
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return float64(r) / 255, float64(g) / 255, float64(b) / 255
}

// GetChartPNGHandler renders the trajectory chart for the requested selection.
func (c *AssessmentController) GetChartPNGHandler(w http.ResponseWriter, r *http.Request) {

	selection, field, ok := c.parseSelection(r)

	set := TrajectorySet{Instrument: selection.InstrumentCode, FieldName: selection.FieldName}
	if ok {
		entries, err := c.FetchScores(selection)
		if c.HandleError(err, w) {
			return
		}
		set = BuildTrajectories(field, entries)
		set.Instrument = selection.InstrumentCode
	}

	title := fmt.Sprintf("%s Trajectories - %s", field.Label, c.therapistName(selection))
	if !ok {
		title = fmt.Sprintf("%s - %s", selection.InstrumentCode, selection.FieldName)
	}
	img := RenderTrajectoryChart(set, field, title)

	w.Header().Add("Content-Type", "image/png")
	w.Header().Add("Access-Control-Allow-Origin", "*")
	if err := png.Encode(w, img); err != nil {
		log.Println(err)
	}
}
