// Package output renders the final validator summary for humans.
package output

import (
	"io"
	"sort"

	"github.com/nodeset-org/validator-summary/pkg/analysis"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printer for pretty printing numbers
var printer = message.NewPrinter(language.English)

// WriteReport writes one line per histogram bucket in ascending order of
// validator count, followed by the totals and the concentration ratio.
func WriteReport(w io.Writer, summary *analysis.Summary) error {
	if summary.Empty() {
		_, err := printer.Fprintln(w, "No NodeSet-related Aggregate transactions found.")
		return err
	}

	counts := make([]uint, 0, len(summary.Histogram))
	for count := range summary.Histogram {
		counts = append(counts, count)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })

	for _, count := range counts {
		if _, err := printer.Fprintf(w, "Number of operators with %d validators: %d\n", count, summary.Histogram[count]); err != nil {
			return err
		}
	}

	if _, err := printer.Fprintf(w, "total validators: %d\n", summary.TotalValidators); err != nil {
		return err
	}
	if _, err := printer.Fprintf(w, "max validators: %d\n", summary.MaxValidators); err != nil {
		return err
	}
	_, err := printer.Fprintf(w, "Net maximum asset exposure for highest operators: %v\n", summary.ConcentrationRatio)
	return err
}
