package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stafftrack/skills-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMockDB creates a sqlmock-backed database connection
func setupMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewPostgresDB(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func personRows(id int64, name, staffNumber string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "name", "staff_number", "created_at", "updated_at"}).
		AddRow(id, name, staffNumber, now, now)
}

func TestPersonGetByStaffNumber(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person WHERE staff_number`).
			WithArgs("1").
			WillReturnRows(personRows(7, "Samba", "1"))

		person, err := repo.GetByStaffNumber("1")
		require.NoError(t, err)
		require.NotNil(t, person)
		assert.Equal(t, int64(7), person.ID)
		assert.Equal(t, "Samba", person.Name)
		assert.Equal(t, "1", person.StaffNumber)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person WHERE staff_number`).
			WithArgs("99").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "staff_number", "created_at", "updated_at"}))

		person, err := repo.GetByStaffNumber("99")
		require.NoError(t, err)
		assert.Nil(t, person)
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person WHERE staff_number`).
			WithArgs("1").
			WillReturnError(fmt.Errorf("database error"))

		person, err := repo.GetByStaffNumber("1")
		assert.Error(t, err)
		assert.Nil(t, person)
		assert.Contains(t, err.Error(), "failed to fetch person")
	})
}

func TestPersonCreate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO person`).
			WithArgs("Samba", "1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(3), now, now))

		person := &models.Person{Name: "Samba", StaffNumber: "1"}
		err := repo.Create(person)
		require.NoError(t, err)
		assert.Equal(t, int64(3), person.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO person`).
			WithArgs("Samba", "1").
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Person{Name: "Samba", StaffNumber: "1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create person")
	})
}

func TestPersonUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE person`).
			WithArgs(int64(3), "Samba Updated", "1").
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

		err := repo.Update(&models.Person{ID: 3, Name: "Samba Updated", StaffNumber: "1"})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Person Not Found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE person`).
			WithArgs(int64(99), "Nobody", "99").
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		err := repo.Update(&models.Person{ID: 99, Name: "Nobody", StaffNumber: "99"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "person not found")
	})
}

func TestPersonDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Deletes Associations Then Person", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM person_skill WHERE person_id`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM person WHERE id`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(&models.Person{ID: 3})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM person_skill WHERE person_id`).
			WithArgs(int64(3)).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Delete(&models.Person{ID: 3})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete person skills")
	})
}

func TestPersonGetAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM person`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "staff_number", "created_at", "updated_at"}).
				AddRow(int64(1), "Samba", "1", now, now).
				AddRow(int64(2), "Jane", "2", now, now))

		people, err := repo.GetAll()
		require.NoError(t, err)
		require.Len(t, people, 2)
		assert.Equal(t, "Samba", people[0].Name)
		assert.Equal(t, "Jane", people[1].Name)
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "staff_number", "created_at", "updated_at"}))

		people, err := repo.GetAll()
		require.NoError(t, err)
		assert.Len(t, people, 0)
	})
}

func TestPersonListSkills(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person_skill ps`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "level"}).
				AddRow("Java", "EXPERT").
				AddRow("Physics", "NOVICE"))

		details, err := repo.ListSkills(3)
		require.NoError(t, err)
		require.Len(t, details, 2)
		assert.Equal(t, "Java", details[0].SkillName)
		assert.Equal(t, models.SkillLevelExpert, details[0].Level)
	})

	t.Run("No Skills", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM person_skill ps`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"name", "level"}))

		details, err := repo.ListSkills(3)
		require.NoError(t, err)
		assert.Len(t, details, 0)
	})
}

func TestPersonReplaceSkills(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPersonRepository(db)

	t.Run("Clears And Inserts Replacement Set", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM person_skill WHERE person_id`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO person_skill`).
			WithArgs(int64(3), int64(10), models.SkillLevelExpert).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO person_skill`).
			WithArgs(int64(3), int64(11), models.SkillLevelNovice).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReplaceSkills(3, []models.PersonSkill{
			{PersonID: 3, SkillID: 10, Level: models.SkillLevelExpert},
			{PersonID: 3, SkillID: 11, Level: models.SkillLevelNovice},
		})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Set Only Clears", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM person_skill WHERE person_id`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReplaceSkills(3, nil)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
