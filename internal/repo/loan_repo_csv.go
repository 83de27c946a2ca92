package repo

import (
	"fmt"
	"strconv"
	"time"

	"go-library-manager/internal/core/storage"
	"go-library-manager/internal/domain"
)

// loans.csv: id,user_id,book_id,borrow_date,return_date（空 = 未归还）
// 贷出记录带自己的稳定 id，避免按列表位置重编号
var loanSchema = storage.Schema[domain.Loan]{
	Columns: 5,
	Encode: func(l domain.Loan) []string {
		returned := ""
		if l.ReturnedAt != nil {
			returned = l.ReturnedAt.Format(domain.DateLayout)
		}
		return []string{
			strconv.FormatInt(l.ID, 10),
			strconv.FormatInt(l.UserID, 10),
			strconv.FormatInt(l.BookID, 10),
			l.BorrowedAt.Format(domain.DateLayout),
			returned,
		}
	},
	Decode: func(row []string) (domain.Loan, error) {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return domain.Loan{}, fmt.Errorf("loan id %q: %w", row[0], err)
		}
		userID, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return domain.Loan{}, fmt.Errorf("loan user id %q: %w", row[1], err)
		}
		bookID, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return domain.Loan{}, fmt.Errorf("loan book id %q: %w", row[2], err)
		}
		borrowed, err := time.Parse(domain.DateLayout, row[3])
		if err != nil {
			return domain.Loan{}, fmt.Errorf("loan %d borrow date %q: %w", id, row[3], err)
		}
		var returned *time.Time
		if row[4] != "" {
			d, err := time.Parse(domain.DateLayout, row[4])
			if err != nil {
				return domain.Loan{}, fmt.Errorf("loan %d return date %q: %w", id, row[4], err)
			}
			returned = &d
		}
		return domain.Loan{ID: id, UserID: userID, BookID: bookID, BorrowedAt: borrowed, ReturnedAt: returned}, nil
	},
	Key: func(l domain.Loan) int64 { return l.ID },
}

type LoanRepo struct {
	t      *storage.Table[domain.Loan]
	nextID int64
}

func NewLoanRepo(path string) *LoanRepo {
	return &LoanRepo{t: storage.NewTable(path, loanSchema), nextID: 1}
}

func (r *LoanRepo) LoadAll() (map[int64]domain.Loan, error) {
	loans, err := r.t.LoadAll()
	if err != nil {
		return nil, err
	}
	r.nextID = storage.MaxKey(loans) + 1
	return loans, nil
}

func (r *LoanRepo) SaveAll(loans map[int64]domain.Loan) error { return r.t.SaveAll(loans) }

func (r *LoanRepo) NextID() int64 {
	id := r.nextID
	r.nextID++
	return id
}
