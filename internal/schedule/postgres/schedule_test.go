package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	scheduleDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/schedule"
	userDatamodel "github.com/Cordillera123/APIs-Solstic-sub002/internal/core/datamodel/user"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
)

func TestScheduleRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ScheduleRepository Suite")
}

var _ = Describe("ScheduleRepository", func() {
	var (
		db   *gorm.DB
		repo schedule.Repository
	)

	const (
		userID   = int64(10)
		officeID = int64(1)
		monday   = 1
	)

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.User{},
			&scheduleDatamodel.OfficeSchedule{},
			&scheduleDatamodel.PersonalSchedule{},
			&scheduleDatamodel.TemporarySchedule{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewScheduleRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetUser", func() {
		It("should return the domain not-found error for a missing id", func() {
			_, err := repo.GetUser(999)

			Expect(err).To(MatchError(user.ErrNotFound))
		})
	})

	Describe("GetOfficeWindow", func() {
		It("should return the enabled window for the weekday", func() {
			Expect(db.Create(&scheduleDatamodel.OfficeSchedule{
				OfficeID: officeID, Weekday: monday, StartTime: "08:00", EndTime: "17:00", Enabled: true,
			}).Error).To(Succeed())

			w, err := repo.GetOfficeWindow(officeID, monday)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).NotTo(BeNil())
			Expect(w.StartTime).To(Equal("08:00"))
			Expect(w.EndTime).To(Equal("17:00"))
		})

		It("should ignore disabled rows", func() {
			Expect(db.Create(&scheduleDatamodel.OfficeSchedule{
				OfficeID: officeID, Weekday: monday, StartTime: "08:00", EndTime: "17:00", Enabled: false,
			}).Error).To(Succeed())

			w, err := repo.GetOfficeWindow(officeID, monday)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNil())
		})

		It("should return nil for a weekday with no row", func() {
			w, err := repo.GetOfficeWindow(officeID, 7)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNil())
		})
	})

	Describe("GetPersonalWindow", func() {
		It("should match the weekday for the user only", func() {
			Expect(db.Create(&scheduleDatamodel.PersonalSchedule{
				UserID: userID, Weekday: monday, StartTime: "14:00", EndTime: "20:00",
			}).Error).To(Succeed())

			w, err := repo.GetPersonalWindow(userID, monday)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).NotTo(BeNil())
			Expect(w.StartTime).To(Equal("14:00"))

			w, err = repo.GetPersonalWindow(userID+1, monday)
			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNil())
		})
	})

	Describe("GetTemporaryWindow", func() {
		seedTemporary := func(from, to time.Time, active bool, start string) {
			Expect(db.Create(&scheduleDatamodel.TemporarySchedule{
				UserID: userID, Weekday: monday, StartTime: start, EndTime: "12:00",
				DateFrom: from, DateTo: to, Active: active,
			}).Error).To(Succeed())
		}

		It("should return the override when today falls inside its date range", func() {
			seedTemporary(today.AddDate(0, 0, -3), today.AddDate(0, 0, 3), true, "06:00")

			w, err := repo.GetTemporaryWindow(userID, monday, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).NotTo(BeNil())
			Expect(w.StartTime).To(Equal("06:00"))
		})

		It("should include both range bounds", func() {
			seedTemporary(today, today, true, "06:00")

			w, err := repo.GetTemporaryWindow(userID, monday, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).NotTo(BeNil())
		})

		It("should ignore expired or inactive overrides", func() {
			seedTemporary(today.AddDate(0, 0, -10), today.AddDate(0, 0, -5), true, "06:00")
			seedTemporary(today.AddDate(0, 0, -1), today.AddDate(0, 0, 1), false, "07:00")

			w, err := repo.GetTemporaryWindow(userID, monday, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(w).To(BeNil())
		})

		It("should prefer the most recent row when overrides overlap", func() {
			seedTemporary(today.AddDate(0, 0, -1), today.AddDate(0, 0, 1), true, "06:00")
			seedTemporary(today.AddDate(0, 0, -1), today.AddDate(0, 0, 1), true, "07:00")

			w, err := repo.GetTemporaryWindow(userID, monday, today)

			Expect(err).NotTo(HaveOccurred())
			Expect(w.StartTime).To(Equal("07:00"))
		})
	})
})
