package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shikisync/shikisync/style"
	"github.com/shikisync/shikisync/track"
	"github.com/shikisync/shikisync/util"
)

func formatChapters(read float64, total int64) string {
	r := strconv.FormatFloat(read, 'f', -1, 64)
	if total <= 0 {
		return r + "/?"
	}
	return fmt.Sprintf("%s/%d", r, total)
}

func printRecord(record *track.Record) {
	width := util.TerminalWidth(80)

	fmt.Println(style.Bold(util.Truncate(record.String(), width)))

	rows := [][2]string{
		{"Status", style.Status(record.Status)},
		{"Chapters", formatChapters(record.LastChapterRead, record.TotalChapters)},
		{"Score", strconv.FormatFloat(record.Score, 'f', -1, 64)},
		{"Manga", strconv.FormatInt(record.RemoteID, 10)},
	}

	if record.Synced() {
		rows = append(rows, [2]string{"Entry", strconv.FormatInt(record.LibraryID, 10)})
	} else {
		rows = append(rows, [2]string{"Entry", style.Faint("not synced")})
	}

	if record.TrackingURL != "" {
		rows = append(rows, [2]string{"URL", style.Faint(record.TrackingURL)})
	}

	for _, row := range rows {
		fmt.Printf("  %s %s\n", style.Fg(style.Blue)(fmt.Sprintf("%-8s", row[0])), row[1])
	}
}

func printSearchResult(i int, r track.SearchResult, width int) {
	index := style.Faint(fmt.Sprintf("%2d.", i+1))
	fmt.Printf("%s %s\n", index, style.Bold(util.Truncate(r.Title, width-4)))

	details := []string{
		style.Fg(style.Purple)(strconv.FormatInt(r.RemoteID, 10)),
		r.PublishingType,
		r.PublishingStatus,
	}
	if r.TotalChapters > 0 {
		details = append(details, util.Quantify(int(r.TotalChapters), "chapter", "chapters"))
	}
	if r.Score > 0 {
		details = append(details, "★ "+strconv.FormatFloat(r.Score, 'f', 2, 64))
	}
	if r.StartDate != "" {
		details = append(details, r.StartDate)
	}

	fmt.Printf("    %s\n", util.Wrap(strings.Join(details, style.Faint(" · ")), width-4))
	fmt.Printf("    %s\n", style.Faint(r.TrackingURL))
}
