package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/cache"
	"github.com/aswin071/Expense-Tracker/internal/migrations"
	"github.com/aswin071/Expense-Tracker/internal/repo"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	users    *UserService
	expenses *ExpenseService
	userRepo repo.UserRepo
	expRepo  repo.ExpenseRepo
	cache    *cache.BudgetCache
	redis    *miniredis.Miniredis
	ctx      context.Context
}

// newFixture wires both services over a temp SQLite file. withCache adds a
// miniredis-backed cache.
func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db, migrations.SQLite, nil))

	f := &fixture{
		ctx:      context.Background(),
		userRepo: repo.NewSQLiteUserRepo(db),
		expRepo:  repo.NewSQLiteExpenseRepo(db),
	}
	if withCache {
		f.redis = miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: f.redis.Addr()})
		t.Cleanup(func() { rdb.Close() })
		f.cache = cache.NewBudgetCache(rdb, time.Minute)
	}
	f.users = NewUserService(f.userRepo, f.cache, bcrypt.MinCost, nil)
	f.expenses = NewExpenseService(f.expRepo, f.userRepo, f.cache, nil)
	return f
}

func ptr[T any](v T) *T { return &v }
