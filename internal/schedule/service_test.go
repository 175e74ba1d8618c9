package schedule_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal/core/events"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/schedule"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/user"
)

// Mock repository for testing
type mockScheduleRepository struct {
	users     map[int64]*user.User
	temporary map[int64]*schedule.RawWindow // keyed by user id
	personal  map[int64]*schedule.RawWindow // keyed by user id
	office    map[int64]*schedule.RawWindow // keyed by office id

	getUserError error
	windowError  error
}

func newMockScheduleRepository() *mockScheduleRepository {
	return &mockScheduleRepository{
		users:     make(map[int64]*user.User),
		temporary: make(map[int64]*schedule.RawWindow),
		personal:  make(map[int64]*schedule.RawWindow),
		office:    make(map[int64]*schedule.RawWindow),
	}
}

func (m *mockScheduleRepository) GetUser(userID int64) (*user.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockScheduleRepository) GetTemporaryWindow(userID int64, weekday int, today time.Time) (*schedule.RawWindow, error) {
	if m.windowError != nil {
		return nil, m.windowError
	}
	return m.temporary[userID], nil
}

func (m *mockScheduleRepository) GetPersonalWindow(userID int64, weekday int) (*schedule.RawWindow, error) {
	if m.windowError != nil {
		return nil, m.windowError
	}
	return m.personal[userID], nil
}

func (m *mockScheduleRepository) GetOfficeWindow(officeID int64, weekday int) (*schedule.RawWindow, error) {
	if m.windowError != nil {
		return nil, m.windowError
	}
	return m.office[officeID], nil
}

// Mock publisher recording published events
type mockPublisher struct {
	events       []events.Event
	publishError error
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.publishError != nil {
		return m.publishError
	}
	m.events = append(m.events, event)
	return nil
}

var _ = Describe("ScheduleService", func() {
	var (
		service  *schedule.Service
		mockRepo *mockScheduleRepository
		mockBus  *mockPublisher
		logger   *slog.Logger
	)

	const (
		userID             = int64(10)
		officeID           = int64(1)
		superAdminProfile  = int64(1)
		regularProfile     = int64(3)
	)

	// Monday 2026-03-02
	monday := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	}

	meta := schedule.ClientMeta{IP: "10.0.0.1", UserAgent: "test", Path: "/api/v1/users/me"}

	newService := func(failOpen bool) *schedule.Service {
		return schedule.NewService(mockRepo, mockBus, schedule.Options{
			SuperAdminProfileID: superAdminProfile,
			FailOpen:            failOpen,
			Location:            time.UTC,
		}, logger)
	}

	addUser := func(id, profileID int64, office *int64) *user.User {
		u := &user.User{ID: id, ProfileID: profileID, OfficeID: office, StateID: 1}
		mockRepo.users[id] = u
		return u
	}

	officeRef := func() *int64 {
		id := officeID
		return &id
	}

	BeforeEach(func() {
		mockRepo = newMockScheduleRepository()
		mockBus = &mockPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = newService(true)
	})

	Context("when the user does not exist", func() {
		It("should deny with USER_NOT_FOUND and close the session", func() {
			d := service.Evaluate(context.Background(), 999, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonUserNotFound))
			Expect(d.CloseSession).To(BeTrue())
		})

		It("should not publish an audit event", func() {
			service.Evaluate(context.Background(), 999, monday(10, 0), meta)

			Expect(mockBus.events).To(BeEmpty())
		})
	})

	Context("when the user is disabled", func() {
		BeforeEach(func() {
			u := addUser(userID, regularProfile, officeRef())
			u.Disabled = true
		})

		It("should deny with USER_DISABLED and close the session", func() {
			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonUserDisabled))
			Expect(d.CloseSession).To(BeTrue())
		})

		It("should publish an audit event", func() {
			service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(mockBus.events).To(HaveLen(1))
			Expect(mockBus.events[0].EventType()).To(Equal(events.EventTypeAccessDenied))
		})
	})

	Context("when the user has an inactive state id", func() {
		It("should be treated the same as disabled", func() {
			u := addUser(userID, regularProfile, officeRef())
			u.StateID = 2

			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Reason).To(Equal(schedule.ReasonUserDisabled))
		})
	})

	Context("when the user is a super admin", func() {
		It("should allow without any schedule lookup, even with no office", func() {
			addUser(userID, superAdminProfile, nil)

			d := service.Evaluate(context.Background(), userID, monday(3, 0), meta)

			Expect(d.Allowed).To(BeTrue())
			Expect(d.Reason).To(Equal(schedule.ReasonSuperAdmin))
			Expect(d.CloseSession).To(BeFalse())
		})
	})

	Context("when the user has no office", func() {
		It("should deny with SIN_OFICINA without closing the session", func() {
			addUser(userID, regularProfile, nil)

			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonNoOffice))
			Expect(d.CloseSession).To(BeFalse())
			Expect(mockBus.events).To(HaveLen(1))
		})
	})

	Context("when no schedule covers today", func() {
		It("should deny with SIN_HORARIO", func() {
			addUser(userID, regularProfile, officeRef())

			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonNoSchedule))
			Expect(mockBus.events).To(HaveLen(1))
		})
	})

	Context("with an office schedule of 08:00-17:00", func() {
		BeforeEach(func() {
			addUser(userID, regularProfile, officeRef())
			mockRepo.office[officeID] = &schedule.RawWindow{StartTime: "08:00", EndTime: "17:00"}
		})

		It("should allow at 08:00 exactly", func() {
			d := service.Evaluate(context.Background(), userID, monday(8, 0), meta)

			Expect(d.Allowed).To(BeTrue())
			Expect(d.Reason).To(Equal(schedule.ReasonInsideWindow))
			Expect(d.Window).NotTo(BeNil())
			Expect(d.Window.Origin).To(Equal(schedule.OriginOffice))
		})

		It("should deny at 07:59 with FUERA_HORARIO and close the session", func() {
			d := service.Evaluate(context.Background(), userID, monday(7, 59), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonOutsideOffice))
			Expect(d.CloseSession).To(BeTrue())
			Expect(d.Window.Start).To(Equal("08:00"))
			Expect(d.Window.End).To(Equal("17:00"))
		})

		It("should include the expected window in the audit event", func() {
			service.Evaluate(context.Background(), userID, monday(18, 0), meta)

			Expect(mockBus.events).To(HaveLen(1))
			payload, ok := mockBus.events[0].Payload().(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(payload["window_start"]).To(Equal("08:00"))
			Expect(payload["window_end"]).To(Equal("17:00"))
			Expect(payload["reason"]).To(Equal(schedule.ReasonOutsideOffice))
			Expect(payload["client_ip"]).To(Equal(meta.IP))
		})

		It("should prefer a personal schedule over the office one", func() {
			mockRepo.personal[userID] = &schedule.RawWindow{StartTime: "14:00", EndTime: "20:00"}

			d := service.Evaluate(context.Background(), userID, monday(9, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonOutsidePersonal))
			Expect(d.Window.Origin).To(Equal(schedule.OriginPersonal))
		})

		It("should prefer a temporary schedule over everything", func() {
			mockRepo.personal[userID] = &schedule.RawWindow{StartTime: "14:00", EndTime: "20:00"}
			mockRepo.temporary[userID] = &schedule.RawWindow{StartTime: "06:00", EndTime: "10:00"}

			d := service.Evaluate(context.Background(), userID, monday(9, 0), meta)

			Expect(d.Allowed).To(BeTrue())
			Expect(d.Window.Origin).To(Equal(schedule.OriginTemporary))
		})

		It("should name the temporary origin when denying outside it", func() {
			mockRepo.temporary[userID] = &schedule.RawWindow{StartTime: "06:00", EndTime: "10:00"}

			d := service.Evaluate(context.Background(), userID, monday(11, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonOutsideTemporary))
		})
	})

	Context("with a night shift crossing midnight", func() {
		BeforeEach(func() {
			addUser(userID, regularProfile, officeRef())
			mockRepo.office[officeID] = &schedule.RawWindow{StartTime: "22:00", EndTime: "06:00"}
		})

		It("should allow at 23:30", func() {
			d := service.Evaluate(context.Background(), userID, monday(23, 30), meta)

			Expect(d.Allowed).To(BeTrue())
		})

		It("should deny at noon", func() {
			d := service.Evaluate(context.Background(), userID, monday(12, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonOutsideOffice))
		})
	})

	Context("when a storage error occurs during evaluation", func() {
		BeforeEach(func() {
			addUser(userID, regularProfile, officeRef())
			mockRepo.windowError = errors.New("connection reset")
		})

		It("should allow with ERROR_INTERNO when failing open", func() {
			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeTrue())
			Expect(d.Reason).To(Equal(schedule.ReasonInternalError))
			Expect(d.CloseSession).To(BeFalse())
		})

		It("should deny with ERROR_INTERNO when failing closed, still without closing the session", func() {
			service = newService(false)

			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonInternalError))
			Expect(d.CloseSession).To(BeFalse())
		})
	})

	Context("when publishing the audit event fails", func() {
		It("should still return the denial", func() {
			addUser(userID, regularProfile, officeRef())
			mockBus.publishError = errors.New("bus closed")

			d := service.Evaluate(context.Background(), userID, monday(10, 0), meta)

			Expect(d.Allowed).To(BeFalse())
			Expect(d.Reason).To(Equal(schedule.ReasonNoSchedule))
		})
	})
})
