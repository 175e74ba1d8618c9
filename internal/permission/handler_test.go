package permission_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"

	"github.com/Cordillera123/APIs-Solstic-sub002/internal"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/permission"
	"github.com/Cordillera123/APIs-Solstic-sub002/internal/transport"
)

// Mock service for handler testing
type mockPermissionService struct {
	tree       []permission.MenuNode
	assign     *permission.AssignResult
	copyResult *permission.CopyResult
	active     *permission.ActivePermissions
	err        error

	lastAssignUserID int64
	lastCopySource   int64
	lastCopyTarget   int64
	lastOverwrite    bool
}

func (m *mockPermissionService) GetPermissionTree(userID int64) ([]permission.MenuNode, error) {
	return m.tree, m.err
}

func (m *mockPermissionService) AssignPermissions(userID int64, changes []permission.ChangeRequest) (*permission.AssignResult, error) {
	m.lastAssignUserID = userID
	return m.assign, m.err
}

func (m *mockPermissionService) CopyPermissions(sourceUserID, targetUserID int64, overwrite bool) (*permission.CopyResult, error) {
	m.lastCopySource = sourceUserID
	m.lastCopyTarget = targetUserID
	m.lastOverwrite = overwrite
	return m.copyResult, m.err
}

func (m *mockPermissionService) GetActivePermissions(userID int64) (*permission.ActivePermissions, error) {
	return m.active, m.err
}

var _ = Describe("PermissionHandler", func() {
	var (
		mockService *mockPermissionService
		router      *chi.Mux
	)

	decode := func(rec *httptest.ResponseRecorder) transport.Envelope {
		var env transport.Envelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		return env
	}

	BeforeEach(func() {
		mockService = &mockPermissionService{}
		handler := permission.NewHandler(mockService)

		router = chi.NewRouter()
		router.Route("/users/{id}/permissions", func(r chi.Router) {
			r.Get("/", handler.GetPermissionTree)
			r.Post("/", handler.AssignPermissions)
			r.Post("/copy", handler.CopyPermissions)
			r.Get("/active", handler.GetActivePermissions)
		})
	})

	Describe("GET /users/{id}/permissions", func() {
		It("should return the tree in a success envelope", func() {
			mockService.tree = []permission.MenuNode{{MenID: 2, Name: "Socios", Submenus: []permission.SubmenuNode{}}}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/10/permissions", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			env := decode(rec)
			Expect(env.Status).To(Equal("success"))
			Expect(env.Data).NotTo(BeNil())
		})

		It("should map a missing user to 404", func() {
			mockService.err = internal.ErrUserNotFound

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/10/permissions", nil))

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(decode(rec).Status).To(Equal("error"))
		})

		It("should reject a non-numeric user id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/abc/permissions", nil))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /users/{id}/permissions", func() {
		post := func(body string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/users/10/permissions", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)
			return rec
		}

		It("should apply changes and answer success when all entries pass", func() {
			mockService.assign = &permission.AssignResult{Changed: 2, Errors: []string{}}

			rec := post(`{"changes":[{"men_id":2,"grant":true},{"men_id":3,"grant":true}]}`)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode(rec).Status).To(Equal("success"))
			Expect(mockService.lastAssignUserID).To(Equal(int64(10)))
		})

		It("should answer with a warning envelope on partial success", func() {
			mockService.assign = &permission.AssignResult{
				Changed: 1,
				Errors:  []string{"(men_id=99, sub_id=null, opc_id=null) is not available for profile 3"},
			}

			rec := post(`{"changes":[{"men_id":2,"grant":true},{"men_id":99,"grant":true}]}`)

			Expect(rec.Code).To(Equal(http.StatusOK))
			env := decode(rec)
			Expect(env.Status).To(Equal("warning"))
			Expect(env.Errors).NotTo(BeNil())
		})

		It("should reject an empty change list", func() {
			rec := post(`{"changes":[]}`)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			rec := post(`{"changes":`)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /users/{id}/permissions/copy", func() {
		It("should pass source, target and overwrite through", func() {
			mockService.copyResult = &permission.CopyResult{Copied: 3}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/users/10/permissions/copy",
				bytes.NewBufferString(`{"source_user_id":20,"overwrite":true}`))
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(mockService.lastCopySource).To(Equal(int64(20)))
			Expect(mockService.lastCopyTarget).To(Equal(int64(10)))
			Expect(mockService.lastOverwrite).To(BeTrue())
		})

		It("should map a profile mismatch to 409", func() {
			mockService.err = internal.ErrProfileMismatch

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/users/10/permissions/copy",
				bytes.NewBufferString(`{"source_user_id":20}`))
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(decode(rec).Status).To(Equal("error"))
		})
	})

	Describe("GET /users/{id}/permissions/active", func() {
		It("should return counts alongside the triples", func() {
			mockService.active = &permission.ActivePermissions{
				Available:      []permission.Triple{{MenuID: 2}},
				Granted:        []permission.Triple{{MenuID: 2}},
				AvailableCount: 1,
				GrantedCount:   1,
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/10/permissions/active", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			env := decode(rec)
			Expect(env.Status).To(Equal("success"))

			payload, ok := env.Data.(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(payload["granted_count"]).To(BeNumerically("==", 1))
		})
	})
})
