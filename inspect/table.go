package inspect

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders one row per edge.
func WriteTable(w io.Writer, s *Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Subscriber", "Dep", "Label", "Fanout"})
	table.SetAutoWrapText(false)

	for _, e := range s.Edges {
		table.Append([]string{
			e.From.Label,
			strconv.FormatUint(e.To.ID, 10),
			e.To.Label,
			strconv.Itoa(e.To.Fanout),
		})
	}
	table.SetFooter([]string{"", "", "edges", strconv.Itoa(len(s.Edges))})
	table.Render()
}
