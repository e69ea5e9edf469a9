package qbo

// Wire types for the QBO v3 REST API. Amounts are plain JSON numbers.

// Ref is a QBO entity reference: an ID plus optional display name.
type Ref struct {
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

// SalesItemLineDetail carries the quantity/price breakdown of a line.
type SalesItemLineDetail struct {
	Qty       float64 `json:"Qty"`
	UnitPrice float64 `json:"UnitPrice"`
	ItemRef   *Ref    `json:"ItemRef,omitempty"`
}

// Line is a single invoice line in QBO's generic per-line schema.
type Line struct {
	LineNum             int                 `json:"LineNum"`
	DetailType          string              `json:"DetailType"`
	Amount              float64             `json:"Amount"`
	Description         string              `json:"Description"`
	SalesItemLineDetail SalesItemLineDetail `json:"SalesItemLineDetail"`
}

type invoicePayload struct {
	CustomerRef Ref    `json:"CustomerRef"`
	TxnDate     string `json:"TxnDate"`
	DueDate     string `json:"DueDate"`
	Line        []Line `json:"Line"`
	PrivateNote string `json:"PrivateNote"`
}

// Invoice is the subset of a created QBO invoice this tool records.
type Invoice struct {
	ID        string  `json:"Id"`
	DocNumber string  `json:"DocNumber"`
	TotalAmt  float64 `json:"TotalAmt"`
}

type invoiceResponse struct {
	Invoice Invoice `json:"Invoice"`
}

// Customer is a QBO customer directory entry.
type Customer struct {
	ID               string `json:"Id"`
	DisplayName      string `json:"DisplayName"`
	PrimaryEmailAddr *struct {
		Address string `json:"Address"`
	} `json:"PrimaryEmailAddr,omitempty"`
}

// Item is a QBO product/service item.
type Item struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

type customerResponse struct {
	Customer Customer `json:"Customer"`
}

type queryResponse struct {
	QueryResponse struct {
		Customer []Customer `json:"Customer"`
		Item     []Item     `json:"Item"`
	} `json:"QueryResponse"`
}

type faultResponse struct {
	Fault struct {
		Error []struct {
			Message string `json:"Message"`
			Detail  string `json:"Detail"`
			Code    string `json:"code"`
		} `json:"Error"`
	} `json:"Fault"`
}
