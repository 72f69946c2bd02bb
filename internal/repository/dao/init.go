package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UserRole{},
		&Profile{},
		&Athlete{},
		&AthleteGuardian{},
		&Class{},
		&ClassSchedule{},
		&ClassSession{},
		&ClassEnrollment{},
		&ClassAttendance{},
		&Event{},
		&Post{},
		&PostImage{},
		&Testimonial{},
	)
}
