package parser

import (
	"github.com/shopspring/decimal"
)

// TimeEntry represents a parsed row from the LMN Job History Time Data export.
type TimeEntry struct {
	TimesheetID  string
	JobsiteID    string
	JobsiteName  string
	CustomerName string
	TaskName     string
	CostCode     string
	ManHours     decimal.Decimal
	BillableRate decimal.Decimal
	EndDate      string
}

// ServiceEntry represents a parsed row from the LMN Job History Service Data export.
type ServiceEntry struct {
	TimesheetID     string
	JobsiteID       string
	JobsiteName     string
	CustomerName    string
	ServiceActivity string
	TimesheetQty    decimal.Decimal
	InvoiceType     string
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	Invoiced        string
	EndDate         string
}

// TimeDataColumns are the columns a time data export must contain.
// Names match the LMN export headers exactly.
var TimeDataColumns = []string{
	"TimesheetID",
	"JobsiteID",
	"Jobsite",
	"CustomerName",
	"TaskName",
	"CostCode",
	"Man Hours",
	"Billable Rate",
	"EndDate",
}

// ServiceDataColumns are the columns a service data export must contain.
var ServiceDataColumns = []string{
	"TimesheetID",
	"JobsiteID",
	"Jobsite",
	"CustomerName",
	"Service_Activity",
	"Timesheet Qty",
	"Invoice Type",
	"Unit Price",
	"Total Price",
	"Invoiced",
	"EndDate",
}
