package console

import (
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/Pesokrava/ecommerce_ledger/internal/domain"
)

var reportColumns = []string{"Product ID", "Product Name", "Quantity", "Price", "COGS", "Selling Price"}

// FormatNumber renders f the way the console has always printed numbers:
// shortest round-trip digits, exponent notation only for very large or very
// small magnitudes (10, 15.5, 1e+21, 1e-7).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func reportRow(line domain.OrderLine, sep string) string {
	return strings.Join([]string{
		line.ProductID,
		line.ProductName,
		strconv.Itoa(line.Quantity),
		FormatNumber(line.Price),
		FormatNumber(line.COGS),
		FormatNumber(line.SellingPrice),
	}, sep)
}

// OrdersTable renders the report printed by get_orders_report: a tab
// separated header and one line per order, each terminated by a newline
func OrdersTable(lines iter.Seq[domain.OrderLine]) string {
	var b strings.Builder
	b.WriteString(strings.Join(reportColumns, "\t"))
	b.WriteByte('\n')
	for line := range lines {
		b.WriteString(reportRow(line, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// OrdersCSV renders the exported report: a comma separated header line
// followed by the order rows joined with newlines, without a trailing newline.
// Fields are written verbatim, without quoting.
func OrdersCSV(lines iter.Seq[domain.OrderLine]) string {
	var rows []string
	for line := range lines {
		rows = append(rows, reportRow(line, ","))
	}
	return strings.Join(reportColumns, ",") + "\n" + strings.Join(rows, "\n")
}
