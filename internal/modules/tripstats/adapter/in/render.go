package in

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"bikeshare/internal/modules/tripstats/dto"
)

const rule = "----------------------------------------"

// RenderText writes the plain report, one block per statistic group.
func RenderText(w io.Writer, out dto.AnalysisOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s  Month: %s  Day: %s\n", out.City, out.Month, out.Day)
	fmt.Fprintf(&b, "Source: %s (%s)  Rows: %s of %s\n", out.SourcePath, out.SourceFormat,
		humanize.Comma(int64(out.MatchedRows)), humanize.Comma(int64(out.TotalRows)))
	b.WriteString(rule + "\n")

	b.WriteString("\nThe Most Frequent Times of Travel\n\n")
	if writeStatus(&b, out.Time.StatStatus) {
		fmt.Fprintf(&b, "The most common month is: %s\n", out.Time.MonthName)
		fmt.Fprintf(&b, "The most common day of the week is: %s\n", out.Time.Weekday)
		fmt.Fprintf(&b, "The most common start hour is: %d\n", out.Time.Hour)
	}
	writeElapsed(&b, out.Time.Elapsed)

	b.WriteString("\nThe Most Popular Stations and Trip\n\n")
	if writeStatus(&b, out.Stations.StatStatus) {
		fmt.Fprintf(&b, "The most commonly used start station is: %s\n", out.Stations.StartStation)
		fmt.Fprintf(&b, "The most commonly used end station is: %s\n", out.Stations.EndStation)
		fmt.Fprintf(&b, "The most frequent trip is: %s\n", out.Stations.Trip)
	}
	writeElapsed(&b, out.Stations.Elapsed)

	b.WriteString("\nTrip Duration\n\n")
	if writeStatus(&b, out.Durations.StatStatus) {
		fmt.Fprintf(&b, "Total travel time: %d hours and %d minutes\n", out.Durations.TotalHours, out.Durations.TotalMinutes)
		fmt.Fprintf(&b, "Mean travel time: %d minutes and %d seconds\n", out.Durations.MeanMinutes, out.Durations.MeanRemainder)
	}
	if out.Durations.SkippedRows > 0 {
		fmt.Fprintf(&b, "Skipped %s rows without a usable duration\n", humanize.Comma(int64(out.Durations.SkippedRows)))
	}
	writeElapsed(&b, out.Durations.Elapsed)

	b.WriteString("\nUser Stats\n\n")
	if writeStatus(&b, out.Users.StatStatus) {
		b.WriteString("Counts of user types:\n")
		writeCounts(&b, out.Users.UserTypes)
		if out.Users.Gender.Status == dto.StatusAvailable {
			b.WriteString("Counts of gender:\n")
			writeCounts(&b, out.Users.Gender.Counts)
		} else {
			fmt.Fprintf(&b, "Gender unavailable: %s\n", out.Users.Gender.Reason)
		}
		if by := out.Users.BirthYear; by.Status == dto.StatusAvailable {
			fmt.Fprintf(&b, "Earliest year of birth: %d\n", by.Earliest)
			fmt.Fprintf(&b, "Most recent year of birth: %d\n", by.MostRecent)
			fmt.Fprintf(&b, "Most common year of birth: %d\n", by.MostCommon)
		} else {
			fmt.Fprintf(&b, "Birth year unavailable: %s\n", by.Reason)
		}
	}
	writeElapsed(&b, out.Users.Elapsed)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMarkdown formats the report as markdown for the terminal renderer.
func RenderMarkdown(out dto.AnalysisOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", titleCase(out.City))
	fmt.Fprintf(&b, "Month **%s**, day **%s**: %s of %s trips.\n\n", out.Month, out.Day,
		humanize.Comma(int64(out.MatchedRows)), humanize.Comma(int64(out.TotalRows)))

	b.WriteString("## Times of travel\n\n")
	if mdStatus(&b, out.Time.StatStatus) {
		fmt.Fprintf(&b, "- Month: **%s**\n- Day of week: **%s**\n- Start hour: **%d:00**\n", out.Time.MonthName, out.Time.Weekday, out.Time.Hour)
	}
	mdElapsed(&b, out.Time.Elapsed)

	b.WriteString("## Stations\n\n")
	if mdStatus(&b, out.Stations.StatStatus) {
		fmt.Fprintf(&b, "- Start: **%s**\n- End: **%s**\n- Trip: **%s**\n", out.Stations.StartStation, out.Stations.EndStation, out.Stations.Trip)
	}
	mdElapsed(&b, out.Stations.Elapsed)

	b.WriteString("## Trip duration\n\n")
	if mdStatus(&b, out.Durations.StatStatus) {
		fmt.Fprintf(&b, "- Total: **%dh %dm**\n- Mean: **%dm %ds**\n", out.Durations.TotalHours, out.Durations.TotalMinutes, out.Durations.MeanMinutes, out.Durations.MeanRemainder)
		if out.Durations.SkippedRows > 0 {
			fmt.Fprintf(&b, "- Skipped: %s rows\n", humanize.Comma(int64(out.Durations.SkippedRows)))
		}
	}
	mdElapsed(&b, out.Durations.Elapsed)

	b.WriteString("## Users\n\n")
	if mdStatus(&b, out.Users.StatStatus) {
		mdCounts(&b, "User type", out.Users.UserTypes)
		if out.Users.Gender.Status == dto.StatusAvailable {
			mdCounts(&b, "Gender", out.Users.Gender.Counts)
		} else {
			fmt.Fprintf(&b, "_Gender unavailable (%s)._\n\n", out.Users.Gender.Status)
		}
		if by := out.Users.BirthYear; by.Status == dto.StatusAvailable {
			fmt.Fprintf(&b, "- Earliest birth year: **%d**\n- Most recent: **%d**\n- Most common: **%d**\n", by.Earliest, by.MostRecent, by.MostCommon)
		} else {
			fmt.Fprintf(&b, "_Birth year unavailable (%s)._\n", by.Status)
		}
	}
	mdElapsed(&b, out.Users.Elapsed)
	return b.String()
}

// RenderRows draws records as a bordered table.
func RenderRows(columns []string, rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

// RawPage returns up to size rows starting at offset and the offset of the
// next page. next equals len(rows) once everything has been shown.
func RawPage(rows [][]string, offset, size int) (page [][]string, next int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) || size < 1 {
		return nil, len(rows)
	}
	end := min(offset+size, len(rows))
	return rows[offset:end], end
}

func writeStatus(b *strings.Builder, s dto.StatStatus) bool {
	if s.Status == dto.StatusAvailable {
		return true
	}
	fmt.Fprintf(b, "Unavailable (%s): %s\n", s.Status, s.Reason)
	return false
}

func writeElapsed(b *strings.Builder, d time.Duration) {
	fmt.Fprintf(b, "\nThis took %.4f seconds.\n%s\n", d.Seconds(), rule)
}

func writeCounts(b *strings.Builder, counts []dto.CountOutput) {
	for _, c := range counts {
		fmt.Fprintf(b, "  %s: %s\n", c.Value, humanize.Comma(int64(c.Count)))
	}
}

func mdStatus(b *strings.Builder, s dto.StatStatus) bool {
	if s.Status == dto.StatusAvailable {
		return true
	}
	fmt.Fprintf(b, "> **%s**: %s\n", s.Status, s.Reason)
	return false
}

func mdElapsed(b *strings.Builder, d time.Duration) {
	fmt.Fprintf(b, "\n_Computed in %s._\n\n", d.Round(time.Microsecond))
}

func mdCounts(b *strings.Builder, label string, counts []dto.CountOutput) {
	fmt.Fprintf(b, "| %s | Trips |\n|---|---:|\n", label)
	for _, c := range counts {
		fmt.Fprintf(b, "| %s | %s |\n", strings.ReplaceAll(c.Value, "|", `\|`), humanize.Comma(int64(c.Count)))
	}
	b.WriteString("\n")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
