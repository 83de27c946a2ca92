package domain

type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
}

// OnLoan 当前借出的册数
func (b Book) OnLoan() int { return b.Total - b.Available }

type BookRepository interface {
	LoadAll() (map[int64]Book, error)
	SaveAll(books map[int64]Book) error
	NextID() int64
}
