package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB is nil when no Docker daemon is reachable; tests skip in that case.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("dockertest.NewPool -> %v; skipping dao integration tests", err)
		os.Exit(m.Run())
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker ping -> %v; skipping dao integration tests", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=academy",
			"POSTGRES_PASSWORD=academy",
			"POSTGRES_DB=academy_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}

	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		dsn := fmt.Sprintf(
			"host=localhost port=%s user=academy password=academy dbname=academy_test sslmode=disable",
			resource.GetPort("5432/tcp"),
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container -> %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("dao.InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container unavailable")
	}
	return testDB
}

func TestUserDAOInsertDuplicateEmail(t *testing.T) {
	db := requireDB(t)
	dao := NewUserDAO(db)
	ctx := context.Background()

	user, err := dao.Insert(ctx, User{Email: "maria@example.com", Password: "hashed"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = dao.Insert(ctx, User{Email: "maria@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestUserDAORoles(t *testing.T) {
	db := requireDB(t)
	dao := NewUserDAO(db)
	ctx := context.Background()

	user, err := dao.Insert(ctx, User{Email: "carla@example.com", Password: "hashed"})
	require.NoError(t, err)

	_, err = dao.InsertRole(ctx, UserRole{UserID: user.ID, Role: "treinador"})
	require.NoError(t, err)

	_, err = dao.InsertRole(ctx, UserRole{UserID: user.ID, Role: "treinador"})
	assert.ErrorIs(t, err, ErrRoleExists)

	_, err = dao.InsertRole(ctx, UserRole{UserID: user.ID, Role: "atleta"})
	require.NoError(t, err)

	roles, err := dao.FindRolesByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	require.NoError(t, dao.DeleteRole(ctx, user.ID, "atleta"))

	roles, err = dao.FindRolesByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "treinador", roles[0].Role)
}

func TestEnrollmentDAOTargetGuard(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	classDAO := NewClassDAO(db)
	class, err := classDAO.Insert(ctx, Class{Name: "Boxe", Discipline: "boxe", Active: true})
	require.NoError(t, err)

	personDAO := NewPersonDAO(db)
	user, err := NewUserDAO(db).Insert(ctx, User{Email: "rui@example.com", Password: "hashed"})
	require.NoError(t, err)
	profile, err := personDAO.InsertProfile(ctx, Profile{UserID: user.ID, Name: "Rui"})
	require.NoError(t, err)

	enrollmentDAO := NewEnrollmentDAO(db)

	_, err = enrollmentDAO.Insert(ctx, ClassEnrollment{ClassID: class.ID, EnrolledAt: time.Now()})
	assert.ErrorIs(t, err, ErrEnrollmentTarget)

	athlete, err := personDAO.InsertAthlete(ctx, Athlete{Name: "Ana"})
	require.NoError(t, err)

	_, err = enrollmentDAO.Insert(ctx, ClassEnrollment{
		ClassID:    class.ID,
		ProfileID:  &profile.ID,
		AthleteID:  &athlete.ID,
		EnrolledAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrEnrollmentTarget)

	enrollment, err := enrollmentDAO.Insert(ctx, ClassEnrollment{
		ClassID:    class.ID,
		ProfileID:  &profile.ID,
		Status:     "active",
		EnrolledAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, enrollment.ID)

	found, err := enrollmentDAO.FindByID(ctx, enrollment.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Profile)
	assert.Equal(t, "Rui", found.Profile.Name)
}

func TestSessionDAOUpsertAttendance(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()

	class, err := NewClassDAO(db).Insert(ctx, Class{Name: "Capoeira", Discipline: "capoeira", Active: true})
	require.NoError(t, err)

	athlete, err := NewPersonDAO(db).InsertAthlete(ctx, Athlete{Name: "Pedro"})
	require.NoError(t, err)

	enrollment, err := NewEnrollmentDAO(db).Insert(ctx, ClassEnrollment{
		ClassID:    class.ID,
		AthleteID:  &athlete.ID,
		Status:     "active",
		EnrolledAt: time.Now(),
	})
	require.NoError(t, err)

	sessionDAO := NewSessionDAO(db)
	session, err := sessionDAO.Insert(ctx, ClassSession{
		ClassID:   class.ID,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
		EndTime:   "19:00",
		Status:    "scheduled",
	})
	require.NoError(t, err)

	mark := ClassAttendance{
		SessionID:    session.ID,
		EnrollmentID: enrollment.ID,
		Status:       "absent",
		Notes:        "sick",
		MarkedBy:     1,
		MarkedAt:     time.Now(),
	}
	require.NoError(t, sessionDAO.UpsertAttendance(ctx, []ClassAttendance{mark}))

	// Resubmitting the sheet updates the existing row instead of adding one.
	mark.Status = "present"
	mark.Notes = ""
	require.NoError(t, sessionDAO.UpsertAttendance(ctx, []ClassAttendance{mark}))

	records, err := sessionDAO.FindAttendanceBySessionID(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "present", records[0].Status)
	assert.Empty(t, records[0].Notes)
}
