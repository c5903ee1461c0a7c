package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/globalcounseling/counseling-api/config"
	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/api/appointment"
	"github.com/globalcounseling/counseling-api/internal/api/auth"
	"github.com/globalcounseling/counseling-api/internal/api/therapist"
	"github.com/globalcounseling/counseling-api/internal/api/user"
	"github.com/globalcounseling/counseling-api/internal/api/wellness"
	"github.com/globalcounseling/counseling-api/internal/router"
	"github.com/globalcounseling/counseling-api/internal/types"
)

const (
	ownerID     = "d290f1ee-6c54-4b01-90e6-d701748f0851"
	otherID     = "9f8e7d6c-5b4a-3210-9876-543210fedcba"
	apptID      = "7b2d9f4e-8a41-4f7a-bb61-2f1e3c9a5d10"
	therapistID = "0aa02ef5-1f46-4b51-9b1c-6b3b8f2a9d11"
)

// stub services back the real router with in-memory behavior so the test
// exercises routing, middleware, decoding and status mapping end to end.

type stubAppointmentService struct{}

func (s *stubAppointmentService) GetAppointments(ctx context.Context) ([]types.Appointment, error) {
	return []types.Appointment{}, nil
}

func (s *stubAppointmentService) GetAppointmentsByUser(ctx context.Context, userID string) ([]types.Appointment, error) {
	return []types.Appointment{}, nil
}

func (s *stubAppointmentService) GetAppointment(ctx context.Context, id string) (*types.Appointment, error) {
	if id != apptID {
		return nil, api.ErrNotFound
	}
	return &types.Appointment{ID: apptID, UserID: ownerID, TherapistID: therapistID, Date: "2025-12-25", Time: "14:00", Status: "pending"}, nil
}

func (s *stubAppointmentService) CreateAppointment(ctx context.Context, owner string, params *types.CreateAppointmentRequest) (*types.Appointment, error) {
	return &types.Appointment{ID: apptID, UserID: owner, TherapistID: params.TherapistID, Date: params.Date, Time: params.Time, Status: "pending"}, nil
}

func (s *stubAppointmentService) UpdateAppointment(ctx context.Context, id, owner string, params *types.UpdateAppointmentRequest) (*types.Appointment, error) {
	if id != apptID || owner != ownerID {
		return nil, api.ErrNotFound
	}
	a := &types.Appointment{ID: apptID, UserID: ownerID, TherapistID: therapistID, Date: "2025-12-25", Time: "14:00", Status: "pending"}
	if params.Status != nil {
		a.Status = *params.Status
	}
	return a, nil
}

func (s *stubAppointmentService) DeleteAppointment(ctx context.Context, id, owner string) error {
	if id != apptID || owner != ownerID {
		return api.ErrNotFound
	}
	return nil
}

type stubWellnessService struct{}

func (s *stubWellnessService) GetEntries(ctx context.Context) ([]types.WellnessEntry, error) {
	return []types.WellnessEntry{}, nil
}

func (s *stubWellnessService) GetEntriesByUser(ctx context.Context, userID string) ([]types.WellnessEntry, error) {
	return []types.WellnessEntry{}, nil
}

func (s *stubWellnessService) GetEntry(ctx context.Context, id string) (*types.WellnessEntry, error) {
	return nil, api.ErrNotFound
}

func (s *stubWellnessService) CreateEntry(ctx context.Context, owner string, params *types.CreateWellnessEntryRequest) (*types.WellnessEntry, error) {
	return &types.WellnessEntry{ID: apptID, UserID: owner, Mood: params.Mood, StressLevel: params.StressLevel}, nil
}

func (s *stubWellnessService) UpdateEntry(ctx context.Context, id, owner string, params *types.UpdateWellnessEntryRequest) (*types.WellnessEntry, error) {
	return nil, api.ErrNotFound
}

func (s *stubWellnessService) DeleteEntry(ctx context.Context, id, owner string) error {
	return api.ErrNotFound
}

type stubUserService struct{}

func (s *stubUserService) GetUsers(ctx context.Context) ([]types.UserAccount, error) {
	return []types.UserAccount{{ID: ownerID, Name: "Jane Doe", Email: "jane@example.com", Role: "user"}}, nil
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*types.UserAccount, error) {
	if id != ownerID {
		return nil, api.ErrNotFound
	}
	return &types.UserAccount{ID: ownerID, Name: "Jane Doe", Email: "jane@example.com", Role: "user"}, nil
}

func (s *stubUserService) CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error) {
	if params.Email == "jane@example.com" {
		return nil, api.ErrConflict
	}
	return &types.UserAccount{ID: otherID, Name: params.Name, Email: params.Email, Role: "user"}, nil
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error) {
	return nil, api.ErrNotFound
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	return api.ErrNotFound
}

type stubTherapistService struct{}

func (s *stubTherapistService) GetTherapists(ctx context.Context) ([]types.Therapist, error) {
	return []types.Therapist{{ID: therapistID, Name: "Dr. Maria Silva", Specialization: "Family Therapy", Country: "Portugal"}}, nil
}

func (s *stubTherapistService) GetTherapist(ctx context.Context, id string) (*types.Therapist, error) {
	return nil, api.ErrNotFound
}

func (s *stubTherapistService) CreateTherapist(ctx context.Context, params *types.CreateTherapistRequest) (*types.Therapist, error) {
	return &types.Therapist{ID: therapistID, Name: params.Name, Specialization: params.Specialization, Country: params.Country, Availability: params.Availability}, nil
}

func (s *stubTherapistService) UpdateTherapist(ctx context.Context, id string, params *types.UpdateTherapistRequest) (*types.Therapist, error) {
	return nil, api.ErrNotFound
}

func (s *stubTherapistService) DeleteTherapist(ctx context.Context, id string) error {
	return api.ErrNotFound
}

type stubAuthRepo struct{}

func (s *stubAuthRepo) GetUserByProviderID(ctx context.Context, providerID string) (*types.UserAccount, error) {
	return nil, api.ErrNotFound
}

func (s *stubAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAccount, error) {
	return nil, api.ErrNotFound
}

func (s *stubAuthRepo) GetUserByID(ctx context.Context, userID string) (*types.UserAccount, error) {
	if userID != ownerID {
		return nil, api.ErrNotFound
	}
	return &types.UserAccount{ID: ownerID, Name: "Jane Doe", Email: "jane@example.com", Role: "user"}, nil
}

func (s *stubAuthRepo) LinkProviderIdentity(ctx context.Context, userID, providerID, avatar string) (*types.UserAccount, error) {
	return nil, api.ErrNotFound
}

func (s *stubAuthRepo) CreateUserFromProfile(ctx context.Context, profile *auth.Profile) (*types.UserAccount, error) {
	return nil, api.ErrConflict
}

func (s *stubAuthRepo) CreateUserByEmail(ctx context.Context, name, email string) (*types.UserAccount, error) {
	return &types.UserAccount{ID: ownerID, Name: name, Email: email, Role: "user"}, nil
}

type RouterE2ESuite struct {
	suite.Suite
	server     *httptest.Server
	client     *http.Client
	cfg        *config.Config
	ownerToken string
	otherToken string
}

func (s *RouterE2ESuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Mode = "development"
	cfg.JWT = config.JWTConfig{
		SecretKey: "e2e-test-secret",
		TokenTTL:  time.Hour,
		Issuer:    "counseling-api",
		Audience:  "counseling-clients",
	}
	s.cfg = cfg

	authService := auth.NewAuthService(&stubAuthRepo{}, cfg, logger)
	authHandler := auth.NewAuthHandlerImpl(authService, nil, cfg, logger)

	mux := router.SetupRouter(&router.Config{
		AuthHandler:        authHandler,
		UserHandler:        user.NewUserHandlerImpl(&stubUserService{}, logger),
		TherapistHandler:   therapist.NewTherapistHandlerImpl(&stubTherapistService{}, logger),
		AppointmentHandler: appointment.NewAppointmentHandlerImpl(&stubAppointmentService{}, logger),
		WellnessHandler:    wellness.NewWellnessHandlerImpl(&stubWellnessService{}, logger),
		Authenticate:       auth.Authenticate(logger, cfg.JWT),
	})

	s.server = httptest.NewServer(mux)
	s.client = &http.Client{Timeout: 10 * time.Second}

	token, err := authService.GenerateAccessToken(&types.UserAccount{ID: ownerID, Email: "jane@example.com", Role: "user"})
	s.Require().NoError(err)
	s.ownerToken = token

	token, err = authService.GenerateAccessToken(&types.UserAccount{ID: otherID, Email: "mallory@example.com", Role: "user"})
	s.Require().NoError(err)
	s.otherToken = token
}

func (s *RouterE2ESuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *RouterE2ESuite) request(method, path, token string, body any) *http.Response {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.server.URL+path, buf)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *RouterE2ESuite) TestPublicReads() {
	for _, path := range []string{"/ping", "/users", "/therapists", "/appointments", "/wellness", "/appointments/user/" + ownerID} {
		resp := s.request(http.MethodGet, path, "", nil)
		s.Equal(http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func (s *RouterE2ESuite) TestMutationsRequireToken() {
	create := map[string]any{"therapistId": therapistID, "date": "2025-12-25", "time": "14:00"}

	resp := s.request(http.MethodPost, "/appointments", "", create)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodPost, "/wellness", "", map[string]any{"mood": "hopeful", "stressLevel": 4})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/auth/me", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *RouterE2ESuite) TestCreateAppointmentForcesOwner() {
	create := map[string]any{"therapistId": therapistID, "date": "2025-12-25", "time": "14:00"}

	resp := s.request(http.MethodPost, "/appointments", s.ownerToken, create)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var got types.Appointment
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	s.Equal(ownerID, got.UserID)
}

func (s *RouterE2ESuite) TestForeignMutationReadsAsNotFound() {
	update := map[string]any{"status": "cancelled"}

	resp := s.request(http.MethodPut, "/appointments/"+apptID, s.otherToken, update)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodPut, "/appointments/"+apptID, s.ownerToken, update)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *RouterE2ESuite) TestOwnerFieldInBodyDiscarded() {
	create := map[string]any{"therapistId": therapistID, "date": "2025-12-25", "time": "14:00", "userId": otherID}

	resp := s.request(http.MethodPost, "/appointments", s.ownerToken, create)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var got types.Appointment
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	s.Equal(ownerID, got.UserID)
}

func (s *RouterE2ESuite) TestMe() {
	resp := s.request(http.MethodGet, "/auth/me", s.ownerToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var got types.UserAccount
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	s.Equal("jane@example.com", got.Email)
}

func (s *RouterE2ESuite) TestDuplicateEmailConflict() {
	resp := s.request(http.MethodPost, "/users", "", map[string]any{"name": "Jane Doe", "email": "jane@example.com"})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func (s *RouterE2ESuite) TestOAuthDisabledWithoutCredentials() {
	resp := s.request(http.MethodGet, "/auth/google", "", nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestRouterE2E(t *testing.T) {
	suite.Run(t, new(RouterE2ESuite))
}
