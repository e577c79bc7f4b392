package tui

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"shipit.dev/shipit/internal/version"
)

// RenderTagTable renders the most recent release tags, highest first
func RenderTagTable(tags []version.Tag) string {
	if len(tags) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetTitle("Latest release tags")
	t.AppendHeader(table.Row{"#", "Tag", "Version", "Train"})
	for i, tag := range tags {
		train := "release"
		if pre := tag.Version.Prerelease(); pre != "" {
			train = strings.SplitN(pre, ".", 2)[0]
		}
		t.AppendRow(table.Row{strconv.Itoa(i + 1), tag.Name, tag.Version.String(), train})
	}
	t.SetStyle(table.StyleRounded)

	return t.Render() + "\n"
}
