package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormSelectAllNormalizesDriverTypes(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	created := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "risk_id", "risk_name", "probability", "created_at"}).
		AddRow("a1b2", []byte("R001"), []byte("Material Delivery Delays"), 70.0, created)
	mock.ExpectQuery("SELECT \\* FROM `risks`").WillReturnRows(rows)

	out, err := st.SelectAll(context.Background(), "risks")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// MySQL text columns arrive as []byte and timestamps as time.Time; both
	// come back as plain strings.
	assert.Equal(t, "R001", out[0]["risk_id"])
	assert.Equal(t, "Material Delivery Delays", out[0]["risk_name"])
	assert.Equal(t, "2025-06-15T10:30:00Z", out[0]["created_at"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFindByKey(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	rows := sqlmock.NewRows([]string{"id", "risk_id"}).AddRow("a1b2", []byte("R001"))
	mock.ExpectQuery("SELECT \\* FROM `risks` WHERE risk_id = \\?").
		WithArgs("R001").
		WillReturnRows(rows)

	row, err := st.FindByKey(context.Background(), "risks", "risk_id", "R001")
	require.NoError(t, err)
	assert.Equal(t, "a1b2", row["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFindByKeyNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	mock.ExpectQuery("SELECT \\* FROM `risks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := st.FindByKey(context.Background(), "risks", "risk_id", "R999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormInsertStampsIdentity(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `risks`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	events, cancel := st.Subscribe("risks")
	defer cancel()

	id, err := st.Insert(context.Background(), "risks", Record{"risk_id": "R001"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, events, 1)
	assert.Equal(t, Event{Table: "risks", Kind: EventInsert}, <-events)
}

func TestGormUpdateTouchesTimestamp(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `risks` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.Update(context.Background(), "risks", "a1b2", Record{"probability": 85.0})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUpdateNoChangeIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	// Re-importing identical data yields zero affected rows; that must not
	// surface as a failure.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `risks` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := st.Update(context.Background(), "risks", "a1b2", Record{"probability": 85.0})
	assert.NoError(t, err)
}

func TestGormDeleteWhere(t *testing.T) {
	db, mock := setupMockDB(t)
	st := NewGorm(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `risks` WHERE status = \\?").
		WithArgs("Closed").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	removed, err := st.DeleteWhere(context.Background(), "risks", "status", "Closed")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
