package domain

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserRepository interface {
	LoadAll() (map[int64]User, error)
	SaveAll(users map[int64]User) error
	NextID() int64
}
