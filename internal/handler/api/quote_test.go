//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"badminton-booking/internal/handler/api"
	"badminton-booking/internal/usecase/queries"
	"badminton-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubQuoteQueries struct {
	quoteFn func(ctx context.Context, req queries.QuoteRequest) (*queries.QuoteView, error)
}

func (s *stubQuoteQueries) Quote(ctx context.Context, req queries.QuoteRequest) (*queries.QuoteView, error) {
	return s.quoteFn(ctx, req)
}

type QuoteHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	stubQuote *stubQuoteQueries
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.stubQuote = &stubQuoteQueries{}
	handler := api.NewQuoteHandler(s.stubQuote)
	s.router.GET("/quote", handler.Quote)
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) TestQuote() {
	courtID := uuid.New()
	coachID := uuid.New()
	racketID := uuid.New()

	s.Run("success: parses full query into the request", func() {
		s.stubQuote.quoteFn = func(_ context.Context, req queries.QuoteRequest) (*queries.QuoteView, error) {
			s.Equal(courtID, req.CourtID)
			s.Require().NotNil(req.CoachID)
			s.Equal(coachID, *req.CoachID)
			s.Equal("10:00", req.Slot.Start().String())
			s.Equal("12:00", req.Slot.End().String())
			s.Equal(int32(2), req.Equipment[racketID])
			return &queries.QuoteView{TotalPriceCents: 55200, AppliedRules: []queries.AppliedRuleView{}}, nil
		}

		url := "/quote?date=2026-09-05&start_time=10:00&end_time=12:00" +
			"&court=" + courtID.String() +
			"&coach=" + coachID.String() +
			"&equipment[" + racketID.String() + "]=2"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response queries.QuoteView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(55200), response.TotalPriceCents)
	})

	s.Run("error: 400 on malformed parameters", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "missing date", url: "/quote?start_time=10:00&end_time=11:00&court=" + courtID.String()},
			{name: "bad date", url: "/quote?date=05-09-2026&start_time=10:00&end_time=11:00&court=" + courtID.String()},
			{name: "bad start", url: "/quote?date=2026-09-05&start_time=x&end_time=11:00&court=" + courtID.String()},
			{name: "empty slot", url: "/quote?date=2026-09-05&start_time=11:00&end_time=11:00&court=" + courtID.String()},
			{name: "bad court id", url: "/quote?date=2026-09-05&start_time=10:00&end_time=11:00&court=nope"},
			{name: "bad coach id", url: "/quote?date=2026-09-05&start_time=10:00&end_time=11:00&court=" + courtID.String() + "&coach=nope"},
			{name: "bad equipment qty", url: "/quote?date=2026-09-05&start_time=10:00&end_time=11:00&court=" + courtID.String() + "&equipment[" + racketID.String() + "]=two"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		url := "/quote?date=2026-09-05&start_time=10:00&end_time=11:00&court=" + courtID.String()

		testCases := []struct {
			name           string
			queriesError   error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "court not found",
				queriesError:   queries.ErrQuoteCourtNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Court not found",
			},
			{
				name:           "coach not found",
				queriesError:   queries.ErrQuoteCoachNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coach not found",
			},
			{
				name:           "equipment not found",
				queriesError:   queries.ErrQuoteEquipmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Equipment not found",
			},
			{
				name:           "negative quantity",
				queriesError:   queries.ErrQuoteInvalidQuantity,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "quantity",
			},
			{
				name:           "internal server error",
				queriesError:   errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.stubQuote.quoteFn = func(context.Context, queries.QuoteRequest) (*queries.QuoteView, error) {
					return nil, tc.queriesError
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
