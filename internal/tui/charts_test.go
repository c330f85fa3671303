package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kingrea/staffdesk/internal/staff"
)

func TestSummaryMarkdownListsEveryRole(t *testing.T) {
	md := summaryMarkdown(staff.Summarize(seededStore().All()))

	assert.Contains(t, md, "| Staff recorded | 3 |")
	assert.Contains(t, md, "| Score range | 1.0 to 60.0 |")
	for _, role := range staff.Roles {
		assert.Contains(t, md, "**"+string(role)+"**")
	}
	assert.Contains(t, md, "- **Associate Professor**: 0")
}

func TestBarLineScalesToPeak(t *testing.T) {
	st := newStyles("dark")
	cases := []struct {
		value, peak, width int
		cells              int
	}{
		{value: 4, peak: 4, width: 10, cells: 10},
		{value: 2, peak: 4, width: 10, cells: 5},
		{value: 1, peak: 100, width: 10, cells: 1},
		{value: 0, peak: 4, width: 10, cells: 0},
		{value: 0, peak: 0, width: 10, cells: 0},
	}
	for _, tc := range cases {
		line := barLine("x", 1, tc.value, tc.peak, tc.width, st.colors.Bar, st)
		if got := strings.Count(line, "█"); got != tc.cells {
			t.Errorf("barLine(%d/%d) drew %d cells, want %d", tc.value, tc.peak, got, tc.cells)
		}
	}
}

func TestRenderSummaryLightTheme(t *testing.T) {
	out := renderSummary(staff.Summarize(nil), newStyles("light"), 60)
	assert.Contains(t, out, "Summary")
}
