// Package integration runs the PostgreSQL repositories against a real
// database. Set KLINIK_TEST_DATABASE_URL to use an existing server; otherwise
// a throwaway postgres:16-alpine container is started through Docker, and the
// suite is skipped when Docker is unavailable.
package integration

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/migrations"
	"github.com/klinik/klinik/pkg/caldate"
)

// testDB is the server shared by every test. Each test migrates its own
// schema into it.
type testDB struct {
	Pool    *pgxpool.Pool
	ConnStr string
}

var globalDB *testDB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stderr, "skipping integration tests in short mode")
		os.Exit(0)
	}

	ctx := context.Background()
	connStr := os.Getenv("KLINIK_TEST_DATABASE_URL")
	cleanup := func() {}
	if connStr == "" {
		var err error
		connStr, cleanup, err = startPostgresContainer(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping integration tests: %v\n", err)
			os.Exit(0)
		}
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "create pool: %v\n", err)
		os.Exit(1)
	}

	globalDB = &testDB{Pool: pool, ConnStr: connStr}
	code := m.Run()
	pool.Close()
	cleanup()
	os.Exit(code)
}

// newSchema migrates a fresh schema and returns a pool whose search_path
// points at it. The schema is dropped when the test ends.
func newSchema(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	schema := "it_" + strings.ReplaceAll(uuid.NewString()[:13], "-", "")

	if _, err := db.NewMigrator(globalDB.Pool, migrations.FS, schema).Up(ctx); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}

	pool, err := db.NewPool(ctx, globalDB.ConnStr, schema, 4, 0)
	if err != nil {
		t.Fatalf("open pool for %s: %v", schema, err)
	}

	t.Cleanup(func() {
		pool.Close()
		if _, err := globalDB.Pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)); err != nil {
			t.Logf("warning: failed to drop schema %s: %v", schema, err)
		}
	})
	return pool
}

func identityService(pool *pgxpool.Pool) *identity.Service {
	return identity.NewService(
		identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool), identity.NewNurseRepoPG(pool))
}

func createTestPatient(t *testing.T, pool *pgxpool.Pool, code, name string) *identity.Patient {
	t.Helper()
	p := &identity.Patient{
		PatientCode: code,
		Name:        name,
		DateOfBirth: caldate.MustParse("1990-05-17"),
		Gender:      "Perempuan",
	}
	if err := identityService(pool).CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("create patient %s: %v", code, err)
	}
	return p
}

func createTestDoctor(t *testing.T, pool *pgxpool.Pool, name, specialization string) *identity.Doctor {
	t.Helper()
	d := &identity.Doctor{Name: name, Specialization: specialization}
	if err := identityService(pool).CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("create doctor %s: %v", name, err)
	}
	return d
}

func ptrStr(s string) *string { return &s }
