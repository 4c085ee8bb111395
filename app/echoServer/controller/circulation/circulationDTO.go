package circulation

type IssueReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type ReturnReq struct {
	IssueID int64 `json:"issue_id" validate:"required,gt=0"`
}
