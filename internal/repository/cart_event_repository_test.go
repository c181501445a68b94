package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shoppy-store/internal/database"
	"shoppy-store/internal/domain"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	ctx := context.Background()
	dbContainer, err := postgres.Run(
		ctx,
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := dbContainer.Terminate(context.Background()); err != nil {
			t.Logf("could not teardown postgres container: %v", err)
		}
	})

	connStr, err := dbContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("could not build connection string: %v", err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db, zap.NewNop()); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}
	if version, err := database.SchemaVersion(db); err != nil || version == 0 {
		t.Fatalf("expected applied schema version, got %d (%v)", version, err)
	}

	return db
}

func TestCartEventRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartEventRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	events := []*domain.CartEvent{
		{ID: uuid.New(), CartID: "cart-1", Action: domain.CartActionCreate, Revision: 1, CreatedAt: base},
		{ID: uuid.New(), CartID: "cart-1", Action: domain.CartActionAdd, VariantID: "v1", Quantity: 2, Revision: 2, CreatedAt: base.Add(time.Second)},
		{ID: uuid.New(), CartID: "cart-1", Action: domain.CartActionUpdate, LineItemID: "l1", Quantity: 5, Revision: 3, CreatedAt: base.Add(2 * time.Second)},
		{ID: uuid.New(), CartID: "cart-2", Action: domain.CartActionCreate, Revision: 1, CreatedAt: base},
	}
	for _, event := range events {
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	listed, err := repo.ListByCart(ctx, "cart-1", 10)
	if err != nil {
		t.Fatalf("ListByCart failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 events, got %d", len(listed))
	}
	if listed[0].Action != domain.CartActionUpdate || listed[0].Quantity != 5 || listed[0].LineItemID != "l1" {
		t.Errorf("newest event should come first, got %+v", listed[0])
	}
	if listed[2].ID != events[0].ID {
		t.Errorf("oldest event should come last, got %+v", listed[2])
	}

	limited, err := repo.ListByCart(ctx, "cart-1", 1)
	if err != nil {
		t.Fatalf("ListByCart failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied, got %d events", len(limited))
	}
}

func TestNoopCartEventRepository(t *testing.T) {
	repo := NewNoopCartEventRepository()
	if err := repo.Append(context.Background(), &domain.CartEvent{CartID: "c"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	events, err := repo.ListByCart(context.Background(), "c", 10)
	if err != nil || len(events) != 0 {
		t.Errorf("noop journal must stay empty, got %v %v", events, err)
	}
}
