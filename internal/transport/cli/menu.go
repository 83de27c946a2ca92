package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-library-manager/internal/service"
)

// Menu 交互式菜单：读 stdin、写 stdout，所有业务规则都在 Library 里
type Menu struct {
	lib *service.Library
	in  *bufio.Reader
	out io.Writer
	log *zap.Logger
}

func NewMenu(lib *service.Library, in io.Reader, out io.Writer, log *zap.Logger) *Menu {
	return &Menu{lib: lib, in: bufio.NewReader(in), out: out, log: log}
}

// Run 主循环，选 9 退出
func (m *Menu) Run() {
	for {
		m.clear()
		m.header("Library Management System")
		fmt.Fprintln(m.out, "1. Add Book")
		fmt.Fprintln(m.out, "2. View Books")
		fmt.Fprintln(m.out, "3. Delete Book")
		fmt.Fprintln(m.out, "4. Register User")
		fmt.Fprintln(m.out, "5. View Users")
		fmt.Fprintln(m.out, "6. Issue Book")
		fmt.Fprintln(m.out, "7. Return Book")
		fmt.Fprintln(m.out, "8. View User Loans")
		fmt.Fprintln(m.out, "9. Exit")

		choice, err := m.readLine("Select option: ")
		if err != nil {
			return // stdin 关闭视作退出
		}
		switch choice {
		case "1":
			m.addBook()
		case "2":
			m.listBooks()
		case "3":
			m.deleteBook()
		case "4":
			m.addUser()
		case "5":
			m.listUsers()
		case "6":
			m.issueBook()
		case "7":
			m.returnBook()
		case "8":
			m.userLoans()
		case "9":
			return
		default:
			fmt.Fprintln(m.out, "Invalid option!")
			m.pause()
		}
	}
}

func (m *Menu) addBook() {
	m.clear()
	m.header("Add Book")
	title, err := m.readLine("Title : ")
	if err != nil {
		return
	}
	author, err := m.readLine("Author: ")
	if err != nil {
		return
	}
	copies, err := m.readInt("Total copies: ")
	if err != nil {
		return
	}
	if _, err := m.lib.AddBook(title, author, int(copies)); err != nil {
		m.fail("add book", "Cannot add book (invalid copy count).", err)
	} else {
		fmt.Fprintln(m.out, "Book added successfully!")
	}
	m.pause()
}

func (m *Menu) listBooks() {
	m.clear()
	m.header("Available Books")
	m.renderBooks(m.lib.ListBooks())
	m.pause()
}

func (m *Menu) deleteBook() {
	m.clear()
	m.header("Delete Book")
	id, err := m.readInt("Enter Book ID to delete: ")
	if err != nil {
		return
	}
	if err := m.lib.DeleteBook(id); err != nil {
		m.fail("delete book", "Cannot delete (inexistent or copies issued).", err)
	} else {
		fmt.Fprintln(m.out, "Book deleted.")
	}
	m.pause()
}

func (m *Menu) addUser() {
	m.clear()
	m.header("Register User")
	name, err := m.readLine("User name: ")
	if err != nil {
		return
	}
	if _, err := m.lib.AddUser(name); err != nil {
		m.fail("register user", "Error registering user.", err)
	} else {
		fmt.Fprintln(m.out, "User registered.")
	}
	m.pause()
}

func (m *Menu) listUsers() {
	m.clear()
	m.header("Registered Users")
	m.renderUsers(m.lib.ListUsers())
	m.pause()
}

func (m *Menu) issueBook() {
	m.clear()
	m.header("Issue Book")
	userID, err := m.readInt("User ID : ")
	if err != nil {
		return
	}
	bookID, err := m.readInt("Book ID : ")
	if err != nil {
		return
	}
	if _, err := m.lib.IssueBook(userID, bookID); err != nil {
		m.fail("issue book", "Error issuing book (check IDs / availability).", err)
	} else {
		fmt.Fprintln(m.out, "Book issued.")
	}
	m.pause()
}

func (m *Menu) returnBook() {
	m.clear()
	m.header("Return Book")
	userID, err := m.readInt("User ID : ")
	if err != nil {
		return
	}
	bookID, err := m.readInt("Book ID : ")
	if err != nil {
		return
	}
	if err := m.lib.ReturnBook(userID, bookID); err != nil {
		m.fail("return book", "Error processing return.", err)
	} else {
		fmt.Fprintln(m.out, "Book returned. Thank you!")
	}
	m.pause()
}

func (m *Menu) userLoans() {
	m.clear()
	m.header("User Loans")
	userID, err := m.readInt("User ID : ")
	if err != nil {
		return
	}
	loans := m.lib.UserLoans(userID)
	if len(loans) == 0 {
		fmt.Fprintln(m.out, "No active loans.")
	} else {
		fmt.Fprintf(m.out, "\nBooks currently borrowed by user %d:\n", userID)
		m.renderLoans(loans)
	}
	m.pause()
}

// fail 每个界面有自己的失败措辞，细节进日志
func (m *Menu) fail(op, msg string, err error) {
	fmt.Fprintln(m.out, msg)
	m.log.Warn("operation rejected", zap.String("op", op), zap.Error(err))
}

func (m *Menu) readLine(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readInt 解析失败就重新问，而不是让进程崩掉
func (m *Menu) readInt(label string) (int64, error) {
	for {
		s, err := m.readLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(m.out, "Please enter a number.")
	}
}
