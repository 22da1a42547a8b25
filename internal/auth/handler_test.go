package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	internal "github.com/dcontreras/workshop-management/internal"
)

type mockAuthService struct {
	claims *Claims
	user   *User
	err    error
}

func (m *mockAuthService) Authenticate(dto LoginDTO) (LoginResult, error) {
	if m.err != nil {
		return LoginResult{}, m.err
	}
	return LoginResult{Token: "signed-token", Role: m.user.Role}, nil
}

func (m *mockAuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func (m *mockAuthService) GetUser(userID int64) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func decodeErrorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	err := json.NewDecoder(rec.Body).Decode(&body)
	gomega.Expect(err).ToNot(gomega.HaveOccurred())
	return body.Error.Code
}

var _ = ginkgo.Describe("Auth Middleware", func() {
	var (
		handler *Handler
		mockSvc *mockAuthService
		next    http.Handler
		reached bool
	)

	ginkgo.BeforeEach(func() {
		mockSvc = &mockAuthService{
			claims: &Claims{UserID: 1, Email: "admin@taller.cl", Role: RoleAdmin},
			user:   &User{ID: 1, Email: "admin@taller.cl", Role: RoleAdmin},
		}
		handler = NewHandler(mockSvc)
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(user.ID).To(gomega.Equal(int64(1)))
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	ginkgo.It("should reject a request without a token as missing, not invalid", func() {
		req := httptest.NewRequest(http.MethodGet, "/attentions", nil)
		rec := httptest.NewRecorder()

		handler.Middleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(string(internal.ErrCodeMissingToken)))
		gomega.Expect(reached).To(gomega.BeFalse())
	})

	ginkgo.It("should reject an invalid token with its own code", func() {
		mockSvc.err = internal.ErrInvalidToken
		req := httptest.NewRequest(http.MethodGet, "/attentions", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.Middleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(string(internal.ErrCodeInvalidToken)))
	})

	ginkgo.It("should surface an expired token distinctly", func() {
		mockSvc.err = internal.ErrTokenExpired
		req := httptest.NewRequest(http.MethodGet, "/attentions", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()

		handler.Middleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(string(internal.ErrCodeTokenExpired)))
	})

	ginkgo.It("should place the authenticated user in context and call the next handler", func() {
		req := httptest.NewRequest(http.MethodGet, "/attentions", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		handler.Middleware(next).ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(reached).To(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("RoleAuthorization", func() {
	var (
		roles *RoleAuthorization
		next  http.Handler
	)

	ginkgo.BeforeEach(func() {
		roles = NewRoleAuthorization(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	requestAs := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if role == "" {
			return req
		}
		user := &User{ID: 7, Email: "someone@taller.cl", Role: role}
		return req.WithContext(ContextWithUser(req.Context(), user))
	}

	ginkgo.It("should allow a role on the allow-list", func() {
		rec := httptest.NewRecorder()
		roles.RequireRoles(RoleAdmin)(next).ServeHTTP(rec, requestAs(RoleAdmin))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("should reject a valid token whose role is not on the allow-list", func() {
		rec := httptest.NewRecorder()
		roles.RequireRoles(RoleAdmin)(next).ServeHTTP(rec, requestAs(RoleOperator))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(string(internal.ErrCodeRoleNotAllowed)))
	})

	ginkgo.It("should allow any role named on a multi-role allow-list", func() {
		middleware := roles.RequireRoles(RoleAdmin, RoleOperator, RoleWorker)

		for _, role := range []string{RoleAdmin, RoleOperator, RoleWorker} {
			rec := httptest.NewRecorder()
			middleware(next).ServeHTTP(rec, requestAs(role))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		}

		rec := httptest.NewRecorder()
		middleware(next).ServeHTTP(rec, requestAs(RoleClient))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
	})

	ginkgo.It("should treat a request with no user in context as unauthenticated", func() {
		rec := httptest.NewRecorder()
		roles.RequireRoles(RoleAdmin)(next).ServeHTTP(rec, requestAs(""))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(string(internal.ErrCodeMissingToken)))
	})
})
