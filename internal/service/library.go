package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-library-manager/internal/domain"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrBookOnLoan        = errors.New("book has outstanding loans")
	ErrNoOpenLoan        = errors.New("no matching open loan")
	ErrNegativeCopies    = errors.New("copies must not be negative")
)

// Library 是全部业务规则所在：内存中持有三张表，每次变更后全量写回
// 信号触发的落盘与菜单操作并发，所以所有访问都过同一把锁
type Library struct {
	mu    sync.Mutex
	books map[int64]domain.Book
	users map[int64]domain.User
	loans map[int64]domain.Loan

	bookRepo domain.BookRepository
	userRepo domain.UserRepository
	loanRepo domain.LoanRepository

	log *zap.Logger
	now func() time.Time
}

func New(bookRepo domain.BookRepository, userRepo domain.UserRepository, loanRepo domain.LoanRepository, log *zap.Logger) (*Library, error) {
	books, err := bookRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	users, err := userRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	loans, err := loanRepo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	if err := validateStore(books, loans); err != nil {
		return nil, fmt.Errorf("validate store: %w", err)
	}
	return &Library{
		books:    books,
		users:    users,
		loans:    loans,
		bookRepo: bookRepo,
		userRepo: userRepo,
		loanRepo: loanRepo,
		log:      log,
		now:      time.Now,
	}, nil
}

// validateStore 拒绝账目对不上的存量数据：未归还贷出必须有对应的借出册数
func validateStore(books map[int64]domain.Book, loans map[int64]domain.Loan) error {
	open := map[int64]int{}
	for _, l := range loans {
		if !l.Returned() {
			open[l.BookID]++
		}
	}
	for bookID, n := range open {
		b, ok := books[bookID]
		if !ok {
			return fmt.Errorf("open loan references missing book %d", bookID)
		}
		if n > b.OnLoan() {
			return fmt.Errorf("book %d: %d open loans but only %d copies out", bookID, n, b.OnLoan())
		}
	}
	return nil
}

// today 只保留日期部分，与存储格式对齐
func (l *Library) today() time.Time {
	y, m, d := l.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (l *Library) AddBook(title, author string, copies int) (domain.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if copies < 0 {
		return domain.Book{}, ErrNegativeCopies
	}
	book := domain.Book{
		ID:        l.bookRepo.NextID(),
		Title:     title,
		Author:    author,
		Total:     copies,
		Available: copies,
	}
	l.books[book.ID] = book
	if err := l.bookRepo.SaveAll(l.books); err != nil {
		return domain.Book{}, err
	}
	l.log.Info("book added", zap.Int64("id", book.ID), zap.String("title", title), zap.Int("copies", copies))
	return book, nil
}

func (l *Library) DeleteBook(id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	book, ok := l.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if book.OnLoan() > 0 {
		return ErrBookOnLoan
	}
	delete(l.books, id)
	if err := l.bookRepo.SaveAll(l.books); err != nil {
		return err
	}
	l.log.Info("book deleted", zap.Int64("id", id))
	return nil
}

func (l *Library) AddUser(name string) (domain.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	user := domain.User{ID: l.userRepo.NextID(), Name: name}
	l.users[user.ID] = user
	if err := l.userRepo.SaveAll(l.users); err != nil {
		return domain.User{}, err
	}
	l.log.Info("user registered", zap.Int64("id", user.ID), zap.String("name", name))
	return user, nil
}

func (l *Library) IssueBook(userID, bookID int64) (domain.Loan, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.users[userID]; !ok {
		return domain.Loan{}, ErrUserNotFound
	}
	book, ok := l.books[bookID]
	if !ok {
		return domain.Loan{}, ErrBookNotFound
	}
	if book.Available <= 0 {
		return domain.Loan{}, ErrNoCopiesAvailable
	}

	book.Available--
	l.books[bookID] = book
	loan := domain.Loan{
		ID:         l.loanRepo.NextID(),
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: l.today(),
	}
	l.loans[loan.ID] = loan

	if err := l.bookRepo.SaveAll(l.books); err != nil {
		return domain.Loan{}, err
	}
	if err := l.loanRepo.SaveAll(l.loans); err != nil {
		return domain.Loan{}, err
	}
	l.log.Info("book issued",
		zap.Int64("loan", loan.ID), zap.Int64("user", userID), zap.Int64("book", bookID),
		zap.Int("available", book.Available))
	return loan, nil
}

// ReturnBook 归还同一用户同一本书最早的一笔未归还贷出
func (l *Library) ReturnBook(userID, bookID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var open *domain.Loan
	for _, id := range l.sortedLoanIDs() {
		loan := l.loans[id]
		if loan.UserID == userID && loan.BookID == bookID && !loan.Returned() {
			open = &loan
			break
		}
	}
	if open == nil {
		return ErrNoOpenLoan
	}

	returned := l.today()
	open.ReturnedAt = &returned
	l.loans[open.ID] = *open

	book := l.books[bookID]
	book.Available++
	l.books[bookID] = book

	if err := l.bookRepo.SaveAll(l.books); err != nil {
		return err
	}
	if err := l.loanRepo.SaveAll(l.loans); err != nil {
		return err
	}
	l.log.Info("book returned",
		zap.Int64("loan", open.ID), zap.Int64("user", userID), zap.Int64("book", bookID),
		zap.Int("available", book.Available))
	return nil
}

func (l *Library) ListBooks() []domain.Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	books := make([]domain.Book, 0, len(l.books))
	for _, b := range l.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}

func (l *Library) ListUsers() []domain.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	users := make([]domain.User, 0, len(l.users))
	for _, u := range l.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// UserLoans 该用户当前未归还的贷出，按 id 升序
func (l *Library) UserLoans(userID int64) []domain.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()
	var loans []domain.Loan
	for _, id := range l.sortedLoanIDs() {
		loan := l.loans[id]
		if loan.UserID == userID && !loan.Returned() {
			loans = append(loans, loan)
		}
	}
	return loans
}

func (l *Library) Book(id int64) (domain.Book, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.books[id]
	return b, ok
}

func (l *Library) User(id int64) (domain.User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.users[id]
	return u, ok
}

// SaveAll 退出前再整体落盘一次（信号处理也会调）
func (l *Library) SaveAll() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.bookRepo.SaveAll(l.books); err != nil {
		return err
	}
	if err := l.userRepo.SaveAll(l.users); err != nil {
		return err
	}
	return l.loanRepo.SaveAll(l.loans)
}

func (l *Library) sortedLoanIDs() []int64 {
	ids := make([]int64, 0, len(l.loans))
	for id := range l.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
