package finance

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderReport writes the report as CSV sections separated by blank rows:
// totals, category breakdown, monthly trend, top expenses, budget status.
func (r *CsvReportRendererImpl) RenderReport(report Report) (string, error) {
	data := make([][]string, 0)

	data = append(data,
		[]string{"Period", report.Period.Start.Format("2006-01-02"), report.Period.End.Format("2006-01-02")},
		[]string{"Total income", amountToString(report.TotalIncome)},
		[]string{"Total expense", amountToString(report.TotalExpense)},
		[]string{"Net income", amountToString(report.NetIncome)},
		[]string{},
	)

	data = append(data, []string{"Category", "Amount", "Percentage", "Transactions"})
	for _, breakdown := range report.CategoryBreakdown {
		data = append(data, []string{
			breakdown.CategoryName,
			amountToString(breakdown.Amount),
			amountToString(breakdown.Percentage),
			strconv.Itoa(breakdown.TransactionCount),
		})
	}
	data = append(data, []string{})

	data = append(data, []string{"Month", "Income", "Expense", "Net"})
	for _, trend := range report.MonthlyTrend {
		data = append(data, []string{
			trend.Month,
			amountToString(trend.Income),
			amountToString(trend.Expense),
			amountToString(trend.NetIncome),
		})
	}
	data = append(data, []string{})

	data = append(data, []string{"Date", "Description", "Amount", "Currency"})
	for _, expense := range report.TopExpenses {
		data = append(data, []string{
			expense.Date.Format("2006-01-02"),
			expense.Description,
			amountToString(expense.Amount),
			expense.Currency,
		})
	}
	data = append(data, []string{})

	data = append(data, []string{"Budget", "Spent", "Budgeted", "Remaining", "Percentage", "Status"})
	for _, status := range report.BudgetStatus {
		data = append(data, []string{
			status.BudgetName,
			amountToString(status.Spent),
			amountToString(status.Budgeted),
			amountToString(status.Remaining),
			amountToString(status.Percentage),
			string(status.Status),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if len(row) == 0 {
			// csv.Writer rejects empty records; write a one-cell separator row
			row = []string{""}
		}
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func amountToString(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
