package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quillbooks/quillbooks/internal/apperrors"
	"github.com/quillbooks/quillbooks/internal/core/domain"
	portssvc "github.com/quillbooks/quillbooks/internal/core/ports/services"
	"github.com/quillbooks/quillbooks/internal/dto"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateDraftEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateDraftEntry(ctx context.Context, entryID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteDraftEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockJournalService) PostEntry(ctx context.Context, entryID string, userID string, postingDate time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID, postingDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ReverseEntry(ctx context.Context, entryID string, userID string, reversalDate time.Time, description string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID, reversalDate, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockJournal *MockJournalService
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockJournal = new(MockJournalService)

	v1 := suite.router.Group("/api/v1")
	registerJournalRoutes(v1, suite.mockJournal)
}

func strPtr(s string) *string {
	return &s
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	entryID := uuid.NewString()
	postingDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	posted := &domain.JournalEntry{
		EntryID:   entryID,
		EntryNo:   strPtr("JE-000042"),
		EntryDate: postingDate,
		Status:    domain.Posted,
	}

	suite.mockJournal.On("PostEntry",
		mock.Anything,
		entryID,
		systemUserID, // no identity header on the request
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(postingDate) }),
	).Return(posted, nil).Once()

	body, _ := json.Marshal(dto.PostEntryRequest{PostingDate: postingDate})
	url := fmt.Sprintf("/api/v1/journal-entries/%s/post", entryID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var resp dto.EntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(domain.Posted, resp.Status)
	if suite.NotNil(resp.EntryNo) {
		suite.Equal("JE-000042", *resp.EntryNo)
	}

	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Unbalanced() {
	entryID := uuid.NewString()
	postingDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockJournal.On("PostEntry",
		mock.Anything, entryID, systemUserID,
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(postingDate) }),
	).Return(nil, apperrors.NewUnbalancedError(decimal.NewFromInt(100), decimal.NewFromInt(90))).Once()

	body, _ := json.Marshal(dto.PostEntryRequest{PostingDate: postingDate})
	url := fmt.Sprintf("/api/v1/journal-entries/%s/post", entryID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code, "Unbalanced entries should map to 422")

	var resp struct {
		Error        string          `json:"error"`
		TotalDebits  decimal.Decimal `json:"totalDebits"`
		TotalCredits decimal.Decimal `json:"totalCredits"`
		Delta        decimal.Decimal `json:"delta"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.True(decimal.NewFromInt(100).Equal(resp.TotalDebits), "Response should carry the debit total")
	suite.True(decimal.NewFromInt(90).Equal(resp.TotalCredits), "Response should carry the credit total")
	suite.True(decimal.NewFromInt(10).Equal(resp.Delta), "Response should carry the delta")

	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_AlreadyReversed() {
	entryID := uuid.NewString()
	reversalDate := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)

	suite.mockJournal.On("ReverseEntry",
		mock.Anything, entryID, systemUserID,
		mock.MatchedBy(func(d time.Time) bool { return d.Equal(reversalDate) }),
		"",
	).Return(nil, apperrors.ErrAlreadyReversed).Once()

	body, _ := json.Marshal(dto.ReverseEntryRequest{ReversalDate: reversalDate})
	url := fmt.Sprintf("/api/v1/journal-entries/%s/reverse", entryID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code, "Double reversal should map to 409")
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockJournal.On("GetEntry", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/journal-entries/"+entryID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code, "Unknown entries should map to 404")
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateDraftEntry_Success() {
	entryID := uuid.NewString()
	entryDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	draft := &domain.JournalEntry{
		EntryID:   entryID,
		EntryDate: entryDate,
		Status:    domain.Draft,
	}

	suite.mockJournal.On("CreateDraftEntry",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateEntryRequest) bool {
			return r.Description == "April rent" && len(r.Lines) == 2
		}),
		systemUserID,
	).Return(draft, nil).Once()

	reqBody := dto.CreateEntryRequest{
		EntryDate:   entryDate,
		Description: "April rent",
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "6100", Debit: decimal.NewFromInt(1200)},
			{AccountCode: "1110", Credit: decimal.NewFromInt(1200)},
		},
	}
	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code, "Expected status Created")

	var resp dto.EntryResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(domain.Draft, resp.Status)
	suite.Nil(resp.EntryNo, "Drafts carry no document number")

	suite.mockJournal.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
