package repository_test

import (
	"context"
	"testing"
	"time"

	"golden_hour/internal/repository"
	redisapp "golden_hour/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*repository.RedisSessionRepo, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	return repository.NewRedisSessionRepo(&redisapp.Client{Client: db}), mock
}

func TestRedisSessionRepo_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectSet("refresh:principal-1:tok", "1", time.Hour).SetVal("OK")
	require.NoError(t, repo.SaveRefreshToken(ctx, "principal-1", "tok", time.Hour))

	mock.ExpectGet("refresh:principal-1:tok").SetVal("1")
	ok, err := repo.GetRefreshToken(ctx, "principal-1", "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectGet("refresh:principal-1:gone").RedisNil()
	ok, err = repo.GetRefreshToken(ctx, "principal-1", "gone")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectDel("refresh:principal-1:tok").SetVal(1)
	require.NoError(t, repo.DeleteRefreshToken(ctx, "principal-1", "tok"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepo_MarkRedirected(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectSetNX("redirected:sess-1", "1", time.Hour).SetVal(true)
	first, err := repo.MarkRedirected(ctx, "sess-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	mock.ExpectSetNX("redirected:sess-1", "1", time.Hour).SetVal(false)
	again, err := repo.MarkRedirected(ctx, "sess-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again, "redirect flag is one-shot per session")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepo_DeleteAllSessions(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectKeys("refresh:principal-1:*").SetVal([]string{
		"refresh:principal-1:a",
		"refresh:principal-1:b",
	})
	mock.ExpectDel("refresh:principal-1:a", "refresh:principal-1:b").SetVal(2)

	require.NoError(t, repo.DeleteAllSessions(ctx, "principal-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
