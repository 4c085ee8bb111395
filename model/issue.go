// model/issue.go
package model

import "time"

type IssueStatus string

const (
	StatusIssued   IssueStatus = "issued"
	StatusReturned IssueStatus = "returned"
)

type IssueRecord struct {
	ID         int64       `json:"issue_id"`
	StudentID  int64       `json:"student_id"`
	BookID     int64       `json:"book_id"`
	IssueDate  time.Time   `json:"issue_date"`
	ReturnDate *time.Time  `json:"return_date,omitempty"`
	Status     IssueStatus `json:"status"`
	FineAmount float64     `json:"fine_amount"`
}
