package salaryreport

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

var workbookHeaders = []string{
	"First Name", "Last Name", "Type", "Vehicle", "Department",
	"Main Orders", "Additional Orders",
	"Main Salary", "Final Salary",
	"Talabat Deduction", "Company Deduction", "Petty Cash Deduction",
	"Total Deductions", "Net Salary", "Cash Payment", "Bank Transfer",
	"Remarks",
}

// writeWorkbook renders the monthly report as a single-sheet XLSX file and
// returns the saved path.
func writeWorkbook(dir, companyID string, report MonthlyReportResponse) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := fmt.Sprintf("Salaries %04d-%02d", report.Year, report.Month)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, header := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	rowIndex := 2
	for _, row := range report.Rows {
		setRow(f, sheetName, rowIndex, []any{
			row.FirstName, row.LastName, row.StaffType, row.Vehicle, row.Department,
			row.MainOrder, row.AdditionalOrder,
			row.MainSalary, row.FinalSalary,
			row.TalabatDeduction, row.CompanyDeduction, row.PettyCashDeduction,
			row.TotalDeductions, row.NetSalary, row.CashPayment, row.BankTransfer,
			row.Remarks,
		})
		rowIndex++
	}

	rowIndex++
	for _, group := range report.GroupTotals {
		setTotalRow(f, sheetName, rowIndex, group)
		rowIndex++
	}
	setTotalRow(f, sheetName, rowIndex, report.GrandTotal)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filePath := filepath.Join(dir, fmt.Sprintf(
		"salary_report_%s_%04d_%02d.xlsx", companyID, report.Year, report.Month,
	))
	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

func setRow(f *excelize.File, sheetName string, rowIndex int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
		f.SetCellValue(sheetName, cell, v)
	}
}

func setTotalRow(f *excelize.File, sheetName string, rowIndex int, total TotalRow) {
	setRow(f, sheetName, rowIndex, []any{
		total.GroupKey, fmt.Sprintf("%d rows", total.Count), "", "", "",
		"", "",
		"", total.FinalSalary,
		total.TalabatDeduction, total.CompanyDeduction, total.PettyCashDeduction,
		total.TotalDeductions, total.NetSalary, total.CashPayment, total.BankTransfer,
		"",
	})
}
