package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mockDialector(t *testing.T) (gorm.Dialector, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	// SkipInitializeWithVersion keeps gorm from querying @@version on open.
	return mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), mock
}

func TestOpenGormWithDialector(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing()

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector: %v", err)
	}
	if gdb == nil {
		t.Fatal("nil gorm.DB")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingError(t *testing.T) {
	dial, mock := mockDialector(t)
	mock.ExpectPing().WillReturnError(errors.New("no route"))

	if _, err := OpenGormWithDialector(dial); err == nil {
		t.Fatal("want ping error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
