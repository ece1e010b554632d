package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeRecommendationUsecase struct {
	result usecase.RecommendationResult
	err    error

	gotParams usecase.RecommendationParams
}

func (f *fakeRecommendationUsecase) GetRecommendations(_ context.Context, _ uuid.UUID, params usecase.RecommendationParams) (usecase.RecommendationResult, error) {
	f.gotParams = params
	if f.err != nil {
		return usecase.RecommendationResult{}, f.err
	}
	return f.result, nil
}

func newRecommendationTestApp(uc usecase.RecommendationUsecase, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(func(c fiber.Ctx) error {
		if userID != uuid.Nil {
			c.Locals(middleware.CtxUserIDKey, userID)
		}
		return c.Next()
	})

	h := NewRecommendationHandler(uc)
	h.RegisterRoutes(app.Group("/candidates"))
	return app
}

func TestRecommendationHandler_OK(t *testing.T) {
	reqID := uuid.New()
	fake := &fakeRecommendationUsecase{result: usecase.RecommendationResult{
		RequirementID:    reqID,
		RequirementTitle: "Backend Developer",
		RequiredSkills:   []string{"Go"},
		Candidates: []usecase.RecommendedCandidate{
			{CandidateID: uuid.New(), Name: "Dana", RecommendationScore: 92, MatchPercentage: 67},
		},
		Stats: usecase.RecommendationStats{TotalCandidates: 3, CandidatesWithSkills: 2, AverageMatchPercentage: 40},
	}}
	app := newRecommendationTestApp(fake, uuid.New())

	req := httptest.NewRequest("GET", "/candidates/recommendations?position=Backend&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if fake.gotParams.Position != "Backend" || fake.gotParams.Limit != 5 {
		t.Fatalf("params = %+v, want position=Backend limit=5", fake.gotParams)
	}

	body, _ := io.ReadAll(resp.Body)
	var sr semanticResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	var res usecase.RecommendationResult
	if err := json.Unmarshal(sr.Data, &res); err != nil {
		t.Fatalf("invalid data payload: %v", err)
	}
	if res.RequirementID != reqID {
		t.Fatalf("requirement_id = %s, want %s", res.RequirementID, reqID)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].RecommendationScore != 92 {
		t.Fatalf("unexpected candidates payload: %+v", res.Candidates)
	}
}

func TestRecommendationHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing position", usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{"limit out of range", usecase.ErrRecommendationLimit, fiber.StatusBadRequest},
		{"no requirement", usecase.ErrNoRequirementFound, fiber.StatusNotFound},
		{"requirement without skills", usecase.ErrRequirementSkillsEmpty, fiber.StatusUnprocessableEntity},
		{"internal", usecase.ErrInternal, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRecommendationTestApp(&fakeRecommendationUsecase{err: tc.err}, uuid.New())

			req := httptest.NewRequest("GET", "/candidates/recommendations?position=Backend", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
		})
	}
}

func TestRecommendationHandler_MissingUser(t *testing.T) {
	app := newRecommendationTestApp(&fakeRecommendationUsecase{}, uuid.Nil)

	req := httptest.NewRequest("GET", "/candidates/recommendations?position=Backend", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRecommendationHandler_NonNumericLimit(t *testing.T) {
	app := newRecommendationTestApp(&fakeRecommendationUsecase{}, uuid.New())

	req := httptest.NewRequest("GET", "/candidates/recommendations?position=Backend&limit=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
