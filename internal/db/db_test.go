package db_test

import (
	"context"
	"testing"

	"gradjobs/internal/db"
)

func TestNewPostgresPool_BadURL(t *testing.T) {
	if _, err := db.NewPostgresPool(context.Background(), "not a url ::"); err == nil {
		t.Error("NewPostgresPool accepted a malformed URL")
	}
}

func TestNewRedisClient_BadURL(t *testing.T) {
	if _, err := db.NewRedisClient(context.Background(), "http://localhost:6379"); err == nil {
		t.Error("NewRedisClient accepted a non-redis scheme")
	}
}
