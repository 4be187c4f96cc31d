package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"habit_tracker/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func q(sql string) string { return regexp.QuoteMeta(sql) }

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `users`")).WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	u := &domain.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))

	assert.Equal(t, uint(3), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `users`")).WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})
	mock.ExpectRollback()

	err := NewUserRepository(db).Create(context.Background(), &domain.User{Username: "alice"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(4, "alice", "hash")
	mock.ExpectQuery(q("SELECT * FROM `users` WHERE username = ?")).WillReturnRows(rows)
	mock.ExpectQuery(q("SELECT * FROM `users` WHERE username = ?")).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewUserRepository(db)
	u, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, uint(4), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)

	missing, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "habit_type", "target_value", "target_unit", "target_frequency_id", "created_at", "updated_at"}).
		AddRow(9, 7, "Pushups", "NUMERIC_COUNT", 100.0, "reps", 1, now, now)
	mock.ExpectQuery(q("SELECT * FROM `habits` WHERE `habits`.`id` = ?")).WillReturnRows(rows)

	h, err := NewHabitRepository(db).FindByID(context.Background(), 9)

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, uint(7), h.UserID)
	assert.Equal(t, domain.HabitTypeNumericCount, h.HabitType)
	assert.Equal(t, 100.0, *h.TargetValue)
	assert.Equal(t, "reps", *h.TargetUnit)
}

func TestHabitRepository_FindByIDError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(q("SELECT * FROM `habits`")).WillReturnError(errors.New("connection reset"))

	h, err := NewHabitRepository(db).FindByID(context.Background(), 9)

	assert.Nil(t, h)
	assert.ErrorContains(t, err, "db error: connection reset")
}

func TestHabitRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("INSERT INTO `habits`")).WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	h := &domain.Habit{UserID: 7, Name: "Read", HabitType: domain.HabitTypeBoolean, TargetFrequencyID: 1}
	require.NoError(t, NewHabitRepository(db).Create(context.Background(), h))

	assert.Equal(t, uint(11), h.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM `habits` WHERE `habits`.`id` = ?")).WithArgs(11).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewHabitRepository(db).Delete(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "habit_type", "target_frequency_id", "target_frequency_name"}).
		AddRow(1, 7, "Read", "BOOLEAN", 1, "毎日").
		AddRow(2, 7, "Run", "BOOLEAN", 2, "週に1回")
	mock.ExpectQuery(q("SELECT habits.*, frequency_options.name AS target_frequency_name FROM `habits` LEFT JOIN frequency_options ON frequency_options.id = habits.target_frequency_id WHERE habits.user_id = ? ORDER BY habits.id")).
		WithArgs(7).
		WillReturnRows(rows)

	list, err := NewHabitRepository(db).ListByUser(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Read", list[0].Name)
	assert.Equal(t, "毎日", list[0].TargetFrequencyName)
	assert.Equal(t, uint(2), list[1].ID)
	assert.Equal(t, "週に1回", list[1].TargetFrequencyName)
}

func TestFrequencyOptionRepository_ListVisible(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "name", "user_id", "is_default"}).
		AddRow(1, "毎日", nil, true).
		AddRow(12, "Weekdays", 7, false)
	mock.ExpectQuery(q("SELECT * FROM `frequency_options` WHERE user_id IS NULL OR user_id = ? ORDER BY is_default DESC,name ASC")).
		WithArgs(7).
		WillReturnRows(rows)

	options, err := NewFrequencyOptionRepository(db).ListVisible(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Nil(t, options[0].UserID)
	require.NotNil(t, options[1].UserID)
	assert.Equal(t, uint(7), *options[1].UserID)
}

func TestFrequencyOptionRepository_CountHabits(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(q("SELECT count(*) FROM `habits` WHERE target_frequency_id = ?")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	n, err := NewFrequencyOptionRepository(db).CountHabits(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFrequencyOptionRepository_DeleteInUse(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM `frequency_options`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	mock.ExpectRollback()

	err := NewFrequencyOptionRepository(db).Delete(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE `habits` SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := &domain.Habit{ID: 11, UserID: 7, Name: "Read", HabitType: domain.HabitTypeBoolean, TargetFrequencyID: 1}
	require.NoError(t, NewHabitRepository(db).Update(context.Background(), h))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHabitRepository_UpdateDeletedRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("UPDATE `habits` SET")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	h := &domain.Habit{ID: 11, UserID: 7, Name: "Read", HabitType: domain.HabitTypeBoolean, TargetFrequencyID: 1}
	err := NewHabitRepository(db).Update(context.Background(), h)

	// no INSERT follows the empty UPDATE
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
