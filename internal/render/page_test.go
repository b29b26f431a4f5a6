package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderPage(t *testing.T, chart *Chart) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(chart, DefaultLayout()).Render(context.Background(), &buf))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(doc *html.Node, id string) *html.Node {
	nodes := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == id })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func byClass(doc *html.Node, class string) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		return strings.Contains(" "+attr(n, "class")+" ", " "+class+" ")
	})
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestPage_CellMarkup(t *testing.T) {
	ds := domain.Dataset{Baseline: 8.0, Records: []domain.AnomalyRecord{
		{Year: 2000, Month: 1, Variance: 1.5},
		{Year: 2000, Month: 7, Variance: -0.25},
	}}
	doc := renderPage(t, composeTestChart(t, ds))

	cells := byClass(doc, "cell")
	require.Len(t, cells, 2)

	assert.Equal(t, "rect", cells[0].Data)
	assert.Equal(t, "0", attr(cells[0], "data-month"))
	assert.Equal(t, "2000", attr(cells[0], "data-year"))
	assert.Equal(t, "9.50", attr(cells[0], "data-temp"))
	assert.Equal(t, "1.50", attr(cells[0], "data-variance"))
	assert.Equal(t, "January", attr(cells[0], "data-month-name"))
	assert.Regexp(t, `^#[0-9a-f]{6}$`, attr(cells[0], "fill"))

	assert.Equal(t, "6", attr(cells[1], "data-month"))
	assert.Equal(t, "7.75", attr(cells[1], "data-temp"))
	assert.Equal(t, "-0.25", attr(cells[1], "data-variance"))
}

func TestPage_Structure(t *testing.T) {
	doc := renderPage(t, composeTestChart(t, testDataset()))

	surface := byID(doc, SurfaceID)
	require.NotNil(t, surface)
	assert.Equal(t, "svg", surface.Data)
	assert.Equal(t, "1200", attr(surface, "width"))
	assert.Equal(t, "600", attr(surface, "height"))

	assert.Len(t, byClass(doc, "cell"), 240)

	xAxis := byID(doc, "x-axis")
	require.NotNil(t, xAxis)
	assert.Equal(t, "translate(0,520)", attr(xAxis, "transform"))
	assert.Len(t, byClass(xAxis, "tick"), 2)

	yAxis := byID(doc, "y-axis")
	require.NotNil(t, yAxis)
	assert.Equal(t, "translate(80,0)", attr(yAxis, "transform"))
	assert.Len(t, byClass(yAxis, "tick"), 12)
	assert.Contains(t, textOf(yAxis), "September")

	lg := byID(doc, "legend")
	require.NotNil(t, lg)
	swatches := findAll(lg, func(n *html.Node) bool { return n.Data == "rect" })
	assert.Len(t, swatches, 6)
	assert.Contains(t, textOf(lg), "℃")

	tooltip := byID(doc, TooltipID)
	require.NotNil(t, tooltip)
	assert.Equal(t, "opacity: 0;", attr(tooltip, "style"))

	assert.Equal(t, Title, textOf(byID(doc, "title")))
	assert.Equal(t, "1995 - 2014: base temperature 8.66℃", textOf(byID(doc, "description")))

	scripts := findAll(doc, func(n *html.Node) bool { return n.Data == "script" })
	require.Len(t, scripts, 1)
	assert.Contains(t, textOf(scripts[0]), "mouseover")
	assert.Contains(t, textOf(scripts[0]), "mouseout")
}

func TestPage_EmptySurface(t *testing.T) {
	doc := renderPage(t, nil)

	surface := byID(doc, SurfaceID)
	require.NotNil(t, surface)
	assert.Nil(t, surface.FirstChild, "surface should have no children")

	assert.Empty(t, byClass(doc, "cell"))
	assert.Nil(t, byID(doc, "x-axis"))
	assert.Nil(t, byID(doc, "y-axis"))
	assert.Nil(t, byID(doc, "legend"))
	assert.NotNil(t, byID(doc, TooltipID))
}

func TestPage_EscapesText(t *testing.T) {
	chart := composeTestChart(t, testDataset())
	chart.Description = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, Page(chart, DefaultLayout()).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), `<script>alert`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestPage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Page(composeTestChart(t, testDataset()), DefaultLayout()).Render(ctx, &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
