package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		profile_pic TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		content TEXT NOT NULL,
		image TEXT,
		profile_pic TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	pic := "/static/uploads/alice.png"
	inserted, err := repo.Save(ctx, "alice", "hashed-password", &pic)
	assert.NoError(t, err)
	assert.True(t, inserted)

	var user struct {
		Username     string  `db:"username"`
		PasswordHash string  `db:"password_hash"`
		ProfilePic   *string `db:"profile_pic"`
	}
	err = db.Get(&user, "SELECT username, password_hash, profile_pic FROM users WHERE username=$1", "alice")
	assert.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hashed-password", user.PasswordHash)
	assert.NotNil(t, user.ProfilePic)
	assert.Equal(t, pic, *user.ProfilePic)
}

func TestUserWriteRepository_Save_DuplicateUsername(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	repo := NewUserWriteRepository(db)
	ctx := context.Background()

	inserted, err := repo.Save(ctx, "bob", "hash-one", nil)
	assert.NoError(t, err)
	assert.True(t, inserted)

	// Same username, different password: refused regardless.
	inserted, err = repo.Save(ctx, "bob", "hash-two", nil)
	assert.NoError(t, err)
	assert.False(t, inserted)

	var hash string
	err = db.Get(&hash, "SELECT password_hash FROM users WHERE username=$1", "bob")
	assert.NoError(t, err)
	assert.Equal(t, "hash-one", hash)

	var count int
	err = db.Get(&count, "SELECT COUNT(*) FROM users WHERE username=$1", "bob")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserReadRepository_GetByUsername(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, "charlie", "secret-hash", nil)
	assert.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
		assert.Equal(t, "secret-hash", user.PasswordHash)
		assert.Nil(t, user.ProfilePic)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "Charlie")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}
