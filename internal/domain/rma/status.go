package rma

import "fmt"

// ===============================
// RMA Status
// ===============================

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
)

// Any status may be set to any other status by an admin. There is no
// transition table; REJECTED and COMPLETED are terminal by convention only.

func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusApproved,
		StatusRejected,
		StatusProcessing,
		StatusCompleted,
	}
}

func Labels() map[Status]string {
	return map[Status]string{
		StatusPending:    "Pending",
		StatusApproved:   "Approved",
		StatusRejected:   "Rejected",
		StatusProcessing: "Processing",
		StatusCompleted:  "Completed",
	}
}

func IsValidStatus(s string) bool {
	for _, v := range Statuses() {
		if Status(s) == v {
			return true
		}
	}
	return false
}

// InitialStatus is assigned by the service on creation; clients cannot
// choose the initial status.
func InitialStatus() Status {
	return StatusPending
}

// ReferenceNumber builds the final reference from the row's primary key.
func ReferenceNumber(year int, id uint) string {
	return fmt.Sprintf("RMA-%d-%06d", year, id)
}
