package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stagehand/internal/journal"
)

// renderEventTable renders journal events in the order given. PIDs
// are right-aligned; a zero PID renders blank.
func renderEventTable(events []journal.Event) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Time", "Session", "Event", "Detail", "PID"})

	for _, event := range events {
		pid := ""
		if event.PID > 0 {
			pid = strconv.Itoa(event.PID)
		}
		tw.AppendRow(table.Row{
			event.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			shortSession(event.SessionID),
			string(event.Type),
			event.Detail,
			pid,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
