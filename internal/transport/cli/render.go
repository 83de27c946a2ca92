package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"go-library-manager/internal/domain"
)

func (m *Menu) renderBooks(books []domain.Book) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Title", "Author", "Avail/Total"})
	for _, b := range books {
		t.Append([]string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			fmt.Sprintf("%d/%d", b.Available, b.Total),
		})
	}
	t.Render()
}

func (m *Menu) renderUsers(users []domain.User) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Name"})
	for _, u := range users {
		t.Append([]string{strconv.FormatInt(u.ID, 10), u.Name})
	}
	t.Render()
}

func (m *Menu) renderLoans(loans []domain.Loan) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"Loan", "Book", "Since"})
	for _, l := range loans {
		title := strconv.FormatInt(l.BookID, 10)
		if b, ok := m.lib.Book(l.BookID); ok {
			title = b.Title
		}
		t.Append([]string{
			strconv.FormatInt(l.ID, 10),
			title,
			l.BorrowedAt.Format(domain.DateLayout),
		})
	}
	t.Render()
}
