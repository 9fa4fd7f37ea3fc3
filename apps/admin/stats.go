package main

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// stats prints the tutor-facing per-student overview.
func (cli *commandLine) stats() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tLESSONS\tAVG QUIZ\tVOCAB KNOWN\tWRITINGS")
	for _, row := range cli.svc.StudentOverview() {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%d\t%d\n",
			row.User.Name,
			row.Stats.LessonsAttended,
			row.Stats.AvgQuizPercent,
			row.Stats.VocabKnownCount,
			len(row.Stats.Writing),
		)
	}
	return w.Flush()
}
