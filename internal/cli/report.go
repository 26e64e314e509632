package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"weatherstack-check/internal/services/conformance"
)

func printReport(w io.Writer, report conformance.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tENDPOINT\tSCENARIO\tDURATION\tDETAIL")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strings.ToUpper(string(res.Status)),
			res.Scenario.Kind,
			res.Scenario.Name,
			res.Duration.Round(time.Millisecond),
			res.Reason,
		)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped in %s\n",
		report.Passed, report.Failed, report.Skipped, report.Duration.Round(time.Millisecond))
}
