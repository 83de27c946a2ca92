package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-library-manager/internal/domain"
)

func Test_BookRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	r := NewBookRepo(path)

	books := map[int64]domain.Book{
		1: {ID: 1, Title: "Dune", Author: "Frank Herbert", Total: 3, Available: 2},
		2: {ID: 2, Title: "With, comma \"and quotes\"", Author: "Someone", Total: 1, Available: 1},
	}
	require.NoError(t, r.SaveAll(books))

	loaded, err := NewBookRepo(path).LoadAll()
	require.NoError(t, err)
	assert.Equal(t, books, loaded, "save then load must yield an equal collection")
}

func Test_BookRepo_MissingFileIsEmpty(t *testing.T) {
	r := NewBookRepo(filepath.Join(t.TempDir(), "absent.csv"))

	books, err := r.LoadAll()

	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Equal(t, int64(1), r.NextID(), "empty store starts counting at 1")
}

func Test_BookRepo_MalformedRowFailsLoad(t *testing.T) {
	cases := map[string]string{
		"bad id":           "x,Dune,Herbert,3,2\n",
		"bad total":        "1,Dune,Herbert,three,2\n",
		"bad available":    "1,Dune,Herbert,3,x\n",
		"range violation":  "1,Dune,Herbert,3,4\n",
		"wrong column cnt": "1,Dune,Herbert,3\n",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.csv")
			require.NoError(t, os.WriteFile(path, []byte(row), 0o644))

			_, err := NewBookRepo(path).LoadAll()

			assert.Error(t, err, "malformed rows must fail the load, not be skipped")
		})
	}
}

func Test_BookRepo_NextIDContinuesAfterMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	r := NewBookRepo(path)
	require.NoError(t, r.SaveAll(map[int64]domain.Book{
		7: {ID: 7, Title: "T", Author: "A", Total: 1, Available: 1},
	}))

	r2 := NewBookRepo(path)
	_, err := r2.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, int64(8), r2.NextID())
	assert.Equal(t, int64(9), r2.NextID(), "ids are handed out monotonically")
}

func Test_UserRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	users := map[int64]domain.User{
		1: {ID: 1, Name: "Ada Lovelace"},
		5: {ID: 5, Name: "Grace Hopper"},
	}
	require.NoError(t, NewUserRepo(path).SaveAll(users))

	loaded, err := NewUserRepo(path).LoadAll()

	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}

func Test_LoanRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.csv")
	returned := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	loans := map[int64]domain.Loan{
		1: {ID: 1, UserID: 1, BookID: 2, BorrowedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), ReturnedAt: &returned},
		2: {ID: 2, UserID: 1, BookID: 2, BorrowedAt: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, NewLoanRepo(path).SaveAll(loans))

	loaded, err := NewLoanRepo(path).LoadAll()

	require.NoError(t, err)
	assert.Equal(t, loans, loaded)
	assert.True(t, loaded[1].Returned())
	assert.False(t, loaded[2].Returned(), "empty return date means the loan is open")
}

func Test_LoanRepo_BadDateFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,1,2,not-a-date,\n"), 0o644))

	_, err := NewLoanRepo(path).LoadAll()

	assert.Error(t, err)
}
