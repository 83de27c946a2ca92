package repo

import (
	"fmt"
	"strconv"

	"go-library-manager/internal/core/storage"
	"go-library-manager/internal/domain"
)

// users.csv: id,name
var userSchema = storage.Schema[domain.User]{
	Columns: 2,
	Encode: func(u domain.User) []string {
		return []string{strconv.FormatInt(u.ID, 10), u.Name}
	},
	Decode: func(row []string) (domain.User, error) {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return domain.User{}, fmt.Errorf("user id %q: %w", row[0], err)
		}
		return domain.User{ID: id, Name: row[1]}, nil
	},
	Key: func(u domain.User) int64 { return u.ID },
}

type UserRepo struct {
	t      *storage.Table[domain.User]
	nextID int64
}

func NewUserRepo(path string) *UserRepo {
	return &UserRepo{t: storage.NewTable(path, userSchema), nextID: 1}
}

func (r *UserRepo) LoadAll() (map[int64]domain.User, error) {
	users, err := r.t.LoadAll()
	if err != nil {
		return nil, err
	}
	r.nextID = storage.MaxKey(users) + 1
	return users, nil
}

func (r *UserRepo) SaveAll(users map[int64]domain.User) error { return r.t.SaveAll(users) }

func (r *UserRepo) NextID() int64 {
	id := r.nextID
	r.nextID++
	return id
}
