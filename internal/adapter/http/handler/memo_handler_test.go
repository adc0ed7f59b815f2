package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"memoapp/internal/adapter/cache"
	memorycache "memoapp/internal/adapter/cache/memory"
	memorydb "memoapp/internal/adapter/database/memory"
	"memoapp/internal/adapter/http/handler"
	"memoapp/internal/adapter/http/routes"
	"memoapp/internal/core/model/response"
	"memoapp/internal/core/service"
	"memoapp/pkg/config"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type MemoAPITestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
}

func (s *MemoAPITestSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "test-secret")
}

func (s *MemoAPITestSuite) SetupTest() {
	memoSvc := service.NewMemoService(memorydb.NewStore())
	authSvc := service.NewAuthService(
		memorydb.NewUserStore(),
		cache.NewSessionRepository(memorycache.NewMemoryRepository()),
	)

	logger, err := config.NewLokiLogger("memoapp", "http://localhost:3100")
	Expect(err).To(BeNil())

	s.router = routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler: handler.NewAuthHandler(authSvc),
		MemoHandler: handler.NewMemoHandler(memoSvc, logger),
	})

	auth := s.registerUser("writer@example.com")
	s.token = auth.Data.AccessToken
}

func TestMemoAPITestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoAPITestSuite))
}

func doRequest(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		Expect(err).To(BeNil())
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func (s *MemoAPITestSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	return doRequest(s.router, method, path, token, body)
}

func (s *MemoAPITestSuite) registerUser(email string) response.AuthResponse {
	recorder := s.request("POST", "/api/auth/register", "", gin.H{
		"name":     "Writer",
		"email":    email,
		"password": "password123",
	})

	Expect(recorder.Code).To(Equal(http.StatusCreated))

	var auth response.AuthResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &auth)).To(Succeed())
	Expect(auth.Data.AccessToken).NotTo(BeEmpty())

	return auth
}

func (s *MemoAPITestSuite) createMemo(body gin.H) response.MemoResponse {
	recorder := s.request("POST", "/api/memos", s.token, body)

	Expect(recorder.Code).To(Equal(http.StatusCreated))

	var memo response.MemoResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &memo)).To(Succeed())

	return memo
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func (s *MemoAPITestSuite) TestHealth() {
	recorder := s.request("GET", "/health", "", nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))
	Expect(recorder.Body.String()).To(ContainSubstring(`"status":"ok"`))
}

func (s *MemoAPITestSuite) TestRequiresToken() {
	recorder := s.request("GET", "/api/memos", "", nil)

	Expect(recorder.Code).To(Equal(http.StatusUnauthorized))

	recorder = s.request("GET", "/api/memos", "not-a-jwt", nil)

	Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
}

func (s *MemoAPITestSuite) TestCreateMemo_Validation() {
	recorder := s.request("POST", "/api/memos", s.token, gin.H{
		"content": "no title",
	})

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))

	var body response.ErrorResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
	Expect(body.Error).To(Equal("validation_error"))
	Expect(body.Message).To(ContainSubstring("title"))
}

func (s *MemoAPITestSuite) TestCreateMemo_RejectsUnknownPriority() {
	recorder := s.request("POST", "/api/memos", s.token, gin.H{
		"title":    "Memo",
		"content":  "body",
		"priority": "urgent",
	})

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))
}

func (s *MemoAPITestSuite) TestCreateAndGetMemo() {
	created := s.createMemo(gin.H{
		"title":    "Groceries",
		"content":  "Milk and eggs",
		"category": "home",
		"tags":     []string{"shopping"},
	})

	Expect(created.Priority).To(BeEquivalentTo("medium"))
	Expect(created.Status).To(BeEquivalentTo("active"))

	recorder := s.request("GET", "/api/memos/"+itoa(created.ID), s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var fetched response.MemoResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &fetched)).To(Succeed())
	Expect(fetched.Title).To(Equal("Groceries"))
	Expect(fetched.Tags).To(Equal([]string{"shopping"}))
}

func (s *MemoAPITestSuite) TestGetMemo_NotFound() {
	recorder := s.request("GET", "/api/memos/999", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusNotFound))

	var body response.ErrorResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
	Expect(body.Error).To(Equal("not_found"))
}

func (s *MemoAPITestSuite) TestUpdateMemo() {
	created := s.createMemo(gin.H{"title": "Draft", "content": "v1"})

	recorder := s.request("PUT", "/api/memos/"+itoa(created.ID), s.token, gin.H{
		"title":    "Final",
		"priority": "high",
	})

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var updated response.MemoResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &updated)).To(Succeed())
	Expect(updated.Title).To(Equal("Final"))
	Expect(updated.Priority).To(BeEquivalentTo("high"))
	Expect(updated.Content).To(Equal("v1"))
}

func (s *MemoAPITestSuite) TestDeleteArchivesInsteadOfDestroying() {
	created := s.createMemo(gin.H{"title": "Keep me", "content": "body"})

	recorder := s.request("DELETE", "/api/memos/"+itoa(created.ID), s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var archived response.MemoResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &archived)).To(Succeed())
	Expect(archived.Status).To(BeEquivalentTo("archived"))
	Expect(archived.CompletedAt).NotTo(BeNil())

	recorder = s.request("GET", "/api/memos/"+itoa(created.ID), s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))
}

func (s *MemoAPITestSuite) TestRestoreMemo() {
	created := s.createMemo(gin.H{"title": "Back again", "content": "body"})

	recorder := s.request("PATCH", "/api/memos/"+itoa(created.ID)+"/archive", s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))

	recorder = s.request("PATCH", "/api/memos/"+itoa(created.ID)+"/restore", s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))

	var restored response.MemoResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &restored)).To(Succeed())
	Expect(restored.Status).To(BeEquivalentTo("active"))
	Expect(restored.CompletedAt).To(BeNil())
}

func (s *MemoAPITestSuite) TestPermanentDeleteRequiresArchival() {
	created := s.createMemo(gin.H{"title": "Protected", "content": "body"})

	recorder := s.request("DELETE", "/api/memos/"+itoa(created.ID)+"/permanent", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))

	var body response.ErrorResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
	Expect(body.Error).To(Equal("memo_not_archived"))

	recorder = s.request("DELETE", "/api/memos/"+itoa(created.ID), s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))

	recorder = s.request("DELETE", "/api/memos/"+itoa(created.ID)+"/permanent", s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusOK))

	recorder = s.request("GET", "/api/memos/"+itoa(created.ID), s.token, nil)
	Expect(recorder.Code).To(Equal(http.StatusNotFound))
}

func (s *MemoAPITestSuite) TestListMemos_FiltersAndPaginates() {
	s.createMemo(gin.H{"title": "Alpha", "content": "a", "category": "work"})
	s.createMemo(gin.H{"title": "Beta", "content": "b", "category": "home"})

	recorder := s.request("GET", "/api/memos?category=work", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var page response.MemoListResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &page)).To(Succeed())
	Expect(page.Total).To(Equal(1))
	Expect(page.Memos[0].Title).To(Equal("Alpha"))
	Expect(page.Limit).To(Equal(30))
	Expect(page.Page).To(Equal(1))
}

func (s *MemoAPITestSuite) TestListMemos_RejectsBadStatus() {
	recorder := s.request("GET", "/api/memos?status=deleted", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusBadRequest))
}

func (s *MemoAPITestSuite) TestSearchMemos_EmptyQueryReturnsNothing() {
	s.createMemo(gin.H{"title": "Findable", "content": "body"})

	recorder := s.request("GET", "/api/memos/search", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var page response.MemoListResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &page)).To(Succeed())
	Expect(page.Total).To(Equal(0))
	Expect(page.Memos).To(BeEmpty())
}

func (s *MemoAPITestSuite) TestSearchMemos_FreeText() {
	s.createMemo(gin.H{"title": "Meeting notes", "content": "quarterly review"})
	s.createMemo(gin.H{"title": "Recipe", "content": "pancakes"})

	recorder := s.request("GET", "/api/memos/search?search=quarterly", s.token, nil)

	Expect(recorder.Code).To(Equal(http.StatusOK))

	var page response.MemoListResponse
	Expect(json.Unmarshal(recorder.Body.Bytes(), &page)).To(Succeed())
	Expect(page.Total).To(Equal(1))
	Expect(page.Memos[0].Title).To(Equal("Meeting notes"))
}

func (s *MemoAPITestSuite) TestMemosAreScopedToOwner() {
	created := s.createMemo(gin.H{"title": "Private", "content": "body"})

	other := s.registerUser("reader@example.com")

	recorder := s.request("GET", "/api/memos/"+itoa(created.ID), other.Data.AccessToken, nil)

	Expect(recorder.Code).To(Equal(http.StatusNotFound))
}
