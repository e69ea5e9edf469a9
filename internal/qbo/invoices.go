package qbo

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skilledgarden/lmn2qbo/internal/invoice"
)

// laborItemName is the QBO product/service item used for hourly labor lines.
const laborItemName = "Skilled Garden Hourly Labor"

// InvoiceResult captures the outcome of one invoice creation attempt.
type InvoiceResult struct {
	Success       bool
	JobsiteID     string
	CustomerName  string
	InvoiceID     string
	InvoiceNumber string
	Total         decimal.Decimal
	Err           string
}

// CreateDraftInvoice creates a draft invoice in QuickBooks Online. Failures
// are reported in the result rather than as an error, so batch callers can
// record them per item.
func (c *Client) CreateDraftInvoice(ctx context.Context, inv invoice.InvoiceData, customerID string, itemRef *Ref, terms string) InvoiceResult {
	result := InvoiceResult{
		JobsiteID:    inv.JobsiteID,
		CustomerName: inv.CustomerName,
	}

	invoiceDate, err := time.Parse("2006-01-02", inv.InvoiceDate)
	if err != nil {
		result.Err = fmt.Sprintf("invalid invoice date %q: %v", inv.InvoiceDate, err)
		return result
	}

	lines := make([]Line, 0, len(inv.LineItems))
	for i, item := range inv.LineItems {
		lines = append(lines, BuildLineItem(item, i+1, itemRef))
	}

	payload := invoicePayload{
		CustomerRef: Ref{Value: customerID},
		TxnDate:     inv.InvoiceDate,
		DueDate:     DueDate(invoiceDate, terms).Format("2006-01-02"),
		Line:        lines,
		PrivateNote: fmt.Sprintf("Created from LMN export. JobsiteID: %s", inv.JobsiteID),
	}

	var created invoiceResponse
	if err := c.post(ctx, "invoice", payload, &created); err != nil {
		result.Err = err.Error()
		return result
	}

	result.Success = true
	result.InvoiceID = created.Invoice.ID
	result.InvoiceNumber = created.Invoice.DocNumber
	result.Total = decimal.NewFromFloat(created.Invoice.TotalAmt)
	return result
}

// BuildLineItem maps an invoice line to QBO's SalesItemLineDetail schema.
func BuildLineItem(item invoice.LineItem, lineNum int, itemRef *Ref) Line {
	return Line{
		LineNum:     lineNum,
		DetailType:  "SalesItemLineDetail",
		Amount:      item.Amount.Round(2).InexactFloat64(),
		Description: item.Description,
		SalesItemLineDetail: SalesItemLineDetail{
			Qty:       item.Quantity.InexactFloat64(),
			UnitPrice: item.Rate.InexactFloat64(),
			ItemRef:   itemRef,
		},
	}
}

// termsDays maps payment terms labels to day offsets.
var termsDays = map[string]int{
	"Net 10":         10,
	"Net 15":         15,
	"Net 30":         30,
	"Net 60":         60,
	"Due on receipt": 0,
}

// DueDate computes the invoice due date from its payment terms. Unknown
// terms fall back to Net 15.
func DueDate(invoiceDate time.Time, terms string) time.Time {
	days, ok := termsDays[terms]
	if !ok {
		days = 15
	}
	return invoiceDate.AddDate(0, 0, days)
}

// GetItemByName looks up a QBO product/service item by exact name.
// Returns nil when no item matches.
func (c *Client) GetItemByName(ctx context.Context, name string) (*Item, error) {
	query := fmt.Sprintf("SELECT * FROM Item WHERE Name = '%s'", escapeQuery(name))

	var resp queryResponse
	if err := c.get(ctx, "query", queryParams(query), &resp); err != nil {
		return nil, err
	}

	items := resp.QueryResponse.Item
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// LaborItemRef resolves the item reference for the hourly labor service
// item. Returns nil when the item does not exist in the company file.
func (c *Client) LaborItemRef(ctx context.Context) (*Ref, error) {
	item, err := c.GetItemByName(ctx, laborItemName)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return &Ref{Value: item.ID, Name: item.Name}, nil
}
