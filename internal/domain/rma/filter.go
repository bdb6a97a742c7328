package rma

import "time"

// ===============================
// Caller scope
// ===============================

// Scope narrows visibility by principal type: admins see every row,
// customers only their own, anonymous callers see nothing.
type Scope struct {
	Admin      bool
	CustomerID uint
}

func AdminScope() Scope {
	return Scope{Admin: true}
}

func CustomerScope(customerID uint) Scope {
	return Scope{CustomerID: customerID}
}

func AnonymousScope() Scope {
	return Scope{}
}

// ===============================
// Filter
// ===============================

// Filter is a conjunction over its non-zero members. Search matches the
// reference number, customer name or product name as a case-insensitive
// substring. The date range is inclusive on both ends.
type Filter struct {
	Search       string
	Status       string
	ReturnReason string
	StartDate    *time.Time
	EndDate      *time.Time
}

type Page struct {
	Number  int
	PerPage int
}

func (p Page) Offset() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.PerPage
}
