package salaryreport

// ReportRow is one person's computed pay line for the period. All money
// fields are fixed to three decimal places.
type ReportRow struct {
	StaffID         string `json:"staff_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	StaffType       string `json:"staff_type"`
	Vehicle         string `json:"vehicle,omitempty"`
	Department      string `json:"department,omitempty"`
	MainOrder       int    `json:"main_order"`
	AdditionalOrder int    `json:"additional_order"`

	MainSalary         string `json:"main_salary"`
	FinalSalary        string `json:"final_salary"`
	TalabatDeduction   string `json:"talabat_deduction"`
	CompanyDeduction   string `json:"company_deduction"`
	PettyCashDeduction string `json:"petty_cash_deduction"`
	TotalDeductions    string `json:"total_deductions"`
	NetSalary          string `json:"net_salary"`
	CashPayment        string `json:"cash_payment"`
	BankTransfer       string `json:"bank_transfer"`

	Remarks string `json:"remarks,omitempty"`
}

// TotalRow is the summed figures for one group of rows, or the grand total.
type TotalRow struct {
	GroupKey string `json:"group_key"`
	Count    int    `json:"count"`

	FinalSalary        string `json:"final_salary"`
	TalabatDeduction   string `json:"talabat_deduction"`
	CompanyDeduction   string `json:"company_deduction"`
	PettyCashDeduction string `json:"petty_cash_deduction"`
	TotalDeductions    string `json:"total_deductions"`
	NetSalary          string `json:"net_salary"`
	CashPayment        string `json:"cash_payment"`
	BankTransfer       string `json:"bank_transfer"`
}

const (
	GroupByStaffType  = "staff_type"
	GroupByVehicle    = "vehicle"
	GroupByDepartment = "department"
)

// ReportQuery narrows and regroups the monthly report. Zero value means the
// whole roster grouped by staff type.
type ReportQuery struct {
	StaffType string
	GroupBy   string
}

type MonthlyReportResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	GroupBy string `json:"group_by"`

	Rows        []ReportRow `json:"rows"`
	GroupTotals []TotalRow  `json:"group_totals"`
	GrandTotal  TotalRow    `json:"grand_total"`
}

type MonthSummary struct {
	Month  int      `json:"month"`
	Totals TotalRow `json:"totals"`
}

type YearlyReportResponse struct {
	Year       int            `json:"year"`
	Months     []MonthSummary `json:"months"`
	GrandTotal TotalRow       `json:"grand_total"`
}

type CreateExportRequest struct {
	Year  int `json:"year" binding:"required,gte=2000,lte=2200"`
	Month int `json:"month" binding:"required,gte=1,lte=12"`
}

type ExportResponse struct {
	ID        string `json:"id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Status    string `json:"status"`
	FilePath  string `json:"file_path,omitempty"`
	LastError string `json:"last_error,omitempty"`
}
