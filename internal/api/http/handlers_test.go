package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/soundverse/soundverse/internal/database"
	"github.com/soundverse/soundverse/internal/models"
	"github.com/soundverse/soundverse/pkg/response"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockClipService struct {
	mock.Mock
}

func (s *MockClipService) ListClips(ctx context.Context) ([]*models.Clip, error) {
	args := s.Called(ctx)
	clips, _ := args.Get(0).([]*models.Clip)
	return clips, args.Error(1)
}

func (s *MockClipService) GetClip(ctx context.Context, id int64) (*models.Clip, error) {
	args := s.Called(ctx, id)
	clip, _ := args.Get(0).(*models.Clip)
	return clip, args.Error(1)
}

func (s *MockClipService) CreateClip(ctx context.Context, clip *models.Clip) (*models.Clip, error) {
	args := s.Called(ctx, clip)
	created, _ := args.Get(0).(*models.Clip)
	return created, args.Error(1)
}

func (s *MockClipService) RecordPlay(ctx context.Context, id int64) (*models.Clip, error) {
	args := s.Called(ctx, id)
	clip, _ := args.Get(0).(*models.Clip)
	return clip, args.Error(1)
}

func (s *MockClipService) GetClipStats(ctx context.Context, id int64) (*models.Clip, error) {
	args := s.Called(ctx, id)
	clip, _ := args.Get(0).(*models.Clip)
	return clip, args.Error(1)
}

type HandlersTestSuite struct {
	suite.Suite
	logger      *httplog.Logger
	clipSvcMock *MockClipService
	server      *httptest.Server
	e           *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.clipSvcMock = new(MockClipService)
	router := NewRouter(suite.logger, suite.clipSvcMock)
	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  suite.server.URL,
		Reporter: httpexpect.NewAssertReporter(suite.T()),
		Client: &http.Client{
			// Redirects stay unfollowed so the 302 itself can be asserted.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.clipSvcMock.AssertExpectations(suite.T())
	suite.server.Close()
}

func (suite *HandlersTestSuite) TestWelcome() {
	suite.Run("success", func() {
		suite.e.GET("/").
			Expect().
			Status(http.StatusOK).
			Text().IsEqual("Welcome to the Soundverse!\n")
	})
}

func (suite *HandlersTestSuite) TestListClips() {
	const path = "/clips"

	suite.Run("server error", func() {
		suite.clipSvcMock.
			On("ListClips", mock.Anything).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path).
			Expect().
			Status(http.StatusInternalServerError)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "ListClips", 1)
	})

	suite.Run("empty catalog", func() {
		suite.clipSvcMock.
			On("ListClips", mock.Anything).
			Times(1).
			Return([]*models.Clip{}, nil)

		suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Array().IsEmpty()
	})

	suite.Run("success", func() {
		suite.clipSvcMock.
			On("ListClips", mock.Anything).
			Times(1).
			Return([]*models.Clip{
				{ID: 1, Title: "Chill Vibes", Genre: "ambient", AudioURL: "https://example.com/1.mp3"},
				{ID: 2, Title: "Pop Spark", Genre: "pop", AudioURL: "https://example.com/2.mp3", PlayCount: 3},
			}, nil)

		arr := suite.e.GET(path).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Array()

		arr.Length().IsEqual(2)
		arr.Value(0).Object().
			HasValue("id", 1).
			HasValue("title", "Chill Vibes").
			HasValue("genre", "ambient").
			HasValue("audioUrl", "https://example.com/1.mp3").
			HasValue("playCount", 0).
			ContainsKey("lastPlayedAt")
		arr.Value(1).Object().
			HasValue("playCount", 3)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "ListClips", 1)
	})
}

func (suite *HandlersTestSuite) TestCreateClip() {
	const path = "/clips"

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.EmptyRequestBodyResponse.Message)
	})

	suite.Run("invalid request body", func() {
		suite.e.POST(path).
			WithJSON("invalid body").
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			HasValue("message", response.BadRequestResponse.Message)
	})

	suite.Run("validation error", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"title":    "Chill Vibes",
				"audioUrl": "invalid url",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", response.StatusError).
			ContainsKey("message").
			ContainsKey("details")
	})

	suite.Run("server error", func() {
		suite.clipSvcMock.
			On("CreateClip", mock.Anything, mock.Anything).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(map[string]string{
				"title":    "Chill Vibes",
				"audioUrl": "https://example.com/1.mp3",
			}).
			Expect().
			Status(http.StatusInternalServerError)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "CreateClip", 1)
	})

	suite.Run("success", func() {
		createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		suite.clipSvcMock.
			On("CreateClip", mock.Anything, mock.MatchedBy(func(clip *models.Clip) bool {
				return clip.Title == "Chill Vibes" &&
					clip.Genre == "ambient" &&
					clip.AudioURL == "https://example.com/1.mp3"
			})).
			Times(1).
			Return(&models.Clip{
				ID:           7,
				Title:        "Chill Vibes",
				Description:  "Relaxing ambient sound",
				Genre:        "ambient",
				Duration:     "30s",
				AudioURL:     "https://example.com/1.mp3",
				LastPlayedAt: &createdAt,
				CreatedAt:    createdAt,
				UpdatedAt:    createdAt,
			}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"title":       "Chill Vibes",
				"description": "Relaxing ambient sound",
				"genre":       "ambient",
				"duration":    "30s",
				"audioUrl":    "https://example.com/1.mp3",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("id", 7).
			HasValue("title", "Chill Vibes").
			HasValue("description", "Relaxing ambient sound").
			HasValue("genre", "ambient").
			HasValue("duration", "30s").
			HasValue("audioUrl", "https://example.com/1.mp3").
			HasValue("playCount", 0)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "CreateClip", 1)
	})
}

func (suite *HandlersTestSuite) TestStreamClip() {
	const path = "/clips/%v/stream"

	suite.Run("non-numeric id", func() {
		suite.e.GET(fmt.Sprintf(path, "abc")).
			Expect().
			Status(http.StatusNotFound).
			Text().IsEqual("Clip not found\n")
	})

	suite.Run("not found", func() {
		suite.clipSvcMock.
			On("RecordPlay", mock.Anything, int64(42)).
			Times(1).
			Return(nil, database.ErrClipNotFound)

		suite.e.GET(fmt.Sprintf(path, 42)).
			Expect().
			Status(http.StatusNotFound).
			Text().IsEqual("Clip not found\n")

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "RecordPlay", 1)
	})

	suite.Run("server error", func() {
		suite.clipSvcMock.
			On("RecordPlay", mock.Anything, int64(1)).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(fmt.Sprintf(path, 1)).
			Expect().
			Status(http.StatusInternalServerError)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "RecordPlay", 1)
	})

	suite.Run("success", func() {
		suite.clipSvcMock.
			On("RecordPlay", mock.Anything, int64(1)).
			Times(1).
			Return(&models.Clip{
				ID:        1,
				AudioURL:  "https://example.com/1.mp3",
				PlayCount: 1,
			}, nil)

		suite.e.GET(fmt.Sprintf(path, 1)).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com/1.mp3")

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "RecordPlay", 1)
	})
}

func (suite *HandlersTestSuite) TestGetClipStats() {
	const path = "/clips/%v/stats"

	suite.Run("non-numeric id", func() {
		suite.e.GET(fmt.Sprintf(path, "abc")).
			Expect().
			Status(http.StatusNotFound).
			Text().IsEqual("Clip not found\n")
	})

	suite.Run("not found", func() {
		suite.clipSvcMock.
			On("GetClipStats", mock.Anything, int64(42)).
			Times(1).
			Return(nil, database.ErrClipNotFound)

		suite.e.GET(fmt.Sprintf(path, 42)).
			Expect().
			Status(http.StatusNotFound).
			Text().IsEqual("Clip not found\n")

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "GetClipStats", 1)
	})

	suite.Run("server error", func() {
		suite.clipSvcMock.
			On("GetClipStats", mock.Anything, int64(1)).
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.GET(fmt.Sprintf(path, 1)).
			Expect().
			Status(http.StatusInternalServerError)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "GetClipStats", 1)
	})

	suite.Run("repeated calls return identical bodies", func() {
		playedAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

		suite.clipSvcMock.
			On("GetClipStats", mock.Anything, int64(1)).
			Times(2).
			Return(&models.Clip{
				ID:           1,
				Title:        "Chill Vibes",
				Genre:        "ambient",
				AudioURL:     "https://example.com/1.mp3",
				PlayCount:    5,
				LastPlayedAt: &playedAt,
			}, nil)

		first := suite.e.GET(fmt.Sprintf(path, 1)).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			Body().Raw()

		second := suite.e.GET(fmt.Sprintf(path, 1)).
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			Body().Raw()

		suite.Equal(first, second)
		suite.Contains(first, `"playCount":5`)

		suite.clipSvcMock.AssertNumberOfCalls(suite.T(), "GetClipStats", 2)
	})
}

func (suite *HandlersTestSuite) TestMetrics() {
	suite.Run("counts completed requests by route pattern", func() {
		suite.clipSvcMock.
			On("GetClipStats", mock.Anything, int64(42)).
			Times(1).
			Return(nil, database.ErrClipNotFound)

		suite.e.GET("/").Expect().Status(http.StatusOK)
		suite.e.GET("/clips/42/stats").Expect().Status(http.StatusNotFound)

		body := suite.e.GET("/metrics").
			Expect().
			Status(http.StatusOK).
			Body()

		body.Contains(`http_requests_total{method="GET",route="/",status_code="200"}`)
		body.Contains(`http_requests_total{method="GET",route="/clips/{clipID}/stats",status_code="404"}`)
		body.Contains("go_goroutines")
	})
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
