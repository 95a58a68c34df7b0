package models

type Commission struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	CommissionDate   string `json:"commissionDate"`
	SubmissionDate   string `json:"submissionDate"`
	IsOpenToProjects bool   `json:"isOpenToProjects"`
	IsSite           bool   `json:"isSite"`
}

// NewCommission is the input of a commission creation; Funds are fund ids
// attached after the commission itself is created.
type NewCommission struct {
	Name             string `json:"name" validate:"required,notblank"`
	CommissionDate   string `json:"commissionDate" validate:"required,datetime=2006-01-02"`
	SubmissionDate   string `json:"submissionDate" validate:"required,datetime=2006-01-02"`
	IsOpenToProjects bool   `json:"isOpenToProjects"`
	Funds            []int  `json:"funds" validate:"dive,gt=0"`
}

// UpdateCommission carries both the stored and the edited values of a
// commission so the update can send only what changed.
type UpdateCommission struct {
	ID                  int
	OldName             string
	NewName             string
	OldCommissionDate   string
	NewCommissionDate   string
	OldSubmissionDate   string
	NewSubmissionDate   string
	OldIsOpenToProjects bool
	NewIsOpenToProjects bool
	OldFunds            []int
	NewFunds            []int
}

type Fund struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
	IsSite  bool   `json:"isSite"`
}

// CommissionFund joins a commission to a fund.
type CommissionFund struct {
	ID         int `json:"id"`
	Commission int `json:"commission"`
	Fund       int `json:"fund"`
}

// CommissionFundLink is the body posted to /commissions/funds.
type CommissionFundLink struct {
	Commission int `json:"commission"`
	Fund       int `json:"fund"`
}
