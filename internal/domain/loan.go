package domain

import "time"

// DateLayout 借阅/归还日期的存储格式（ISO-8601 日期）
const DateLayout = "2006-01-02"

type Loan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"` // nil = 未归还
}

func (l Loan) Returned() bool { return l.ReturnedAt != nil }

type LoanRepository interface {
	LoadAll() (map[int64]Loan, error)
	SaveAll(loans map[int64]Loan) error
	NextID() int64
}
