package repo

import (
	"fmt"
	"strconv"

	"go-library-manager/internal/core/storage"
	"go-library-manager/internal/domain"
)

// books.csv: id,title,author,total,available
var bookSchema = storage.Schema[domain.Book]{
	Columns: 5,
	Encode: func(b domain.Book) []string {
		return []string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Available),
		}
	},
	Decode: func(row []string) (domain.Book, error) {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return domain.Book{}, fmt.Errorf("book id %q: %w", row[0], err)
		}
		total, err := strconv.Atoi(row[3])
		if err != nil {
			return domain.Book{}, fmt.Errorf("book total %q: %w", row[3], err)
		}
		available, err := strconv.Atoi(row[4])
		if err != nil {
			return domain.Book{}, fmt.Errorf("book available %q: %w", row[4], err)
		}
		if available < 0 || available > total {
			return domain.Book{}, fmt.Errorf("book %d: available %d out of range 0..%d", id, available, total)
		}
		return domain.Book{ID: id, Title: row[1], Author: row[2], Total: total, Available: available}, nil
	},
	Key: func(b domain.Book) int64 { return b.ID },
}

type BookRepo struct {
	t      *storage.Table[domain.Book]
	nextID int64
}

func NewBookRepo(path string) *BookRepo {
	return &BookRepo{t: storage.NewTable(path, bookSchema), nextID: 1}
}

func (r *BookRepo) LoadAll() (map[int64]domain.Book, error) {
	books, err := r.t.LoadAll()
	if err != nil {
		return nil, err
	}
	r.nextID = storage.MaxKey(books) + 1
	return books, nil
}

func (r *BookRepo) SaveAll(books map[int64]domain.Book) error { return r.t.SaveAll(books) }

func (r *BookRepo) NextID() int64 {
	id := r.nextID
	r.nextID++
	return id
}
