package tabulated

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Format writes the table row by row: a header of values, then one line
// per coin starting with the coin itself.
func (t Table) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)

	header := make([]string, 0, t.NumCols()+1)
	header = append(header, "coin\\value")
	for col := 0; col < t.NumCols(); col++ {
		header = append(header, strconv.Itoa(col))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}

	for row, cells := range t.cells {
		line := make([]string, 0, len(cells)+1)
		line = append(line, strconv.Itoa(t.Coins[row]))
		for _, c := range cells {
			line = append(line, strconv.FormatUint(c, 10))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(line, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (t Table) String() string {
	var b strings.Builder
	_ = t.Format(&b)
	return b.String()
}
