package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myShopSense/domain"
)

type fakeClusterService struct {
	cluster int
	called  bool
	rec     domain.BehaviorRecord
}

func (s *fakeClusterService) Classify(ctx context.Context, rec domain.BehaviorRecord) (int, error) {
	s.called = true
	s.rec = rec
	return s.cluster, nil
}

func (s *fakeClusterService) ModelMetrics() (domain.ModelMetrics, error) {
	return domain.ModelMetrics{SilhouetteScore: 0.41}, nil
}

func postPredict(t *testing.T, svc ClusterService, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cluster/predict", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewClusterHandler(svc).Predict(c))
	return rec
}

const fullBehaviorBody = `{
	"recency": 10,
	"frequency": 4,
	"monetary": 100,
	"avg_items": 2.5,
	"unique_products": 7,
	"wishlist_count": 3,
	"add_to_cart_count": 6,
	"page_views": 40
}`

func TestPredictRejectsEmptyBody(t *testing.T) {
	svc := &fakeClusterService{}

	rec := postPredict(t, svc, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called, "service must not be invoked for an empty record")
}

func TestPredictRejectsMissingField(t *testing.T) {
	svc := &fakeClusterService{}

	// everything except page_views
	body := `{
		"recency": 10,
		"frequency": 4,
		"monetary": 100,
		"avg_items": 2.5,
		"unique_products": 7,
		"wishlist_count": 3,
		"add_to_cart_count": 6
	}`
	rec := postPredict(t, svc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called)
}

func TestPredictAcceptsExplicitZeroes(t *testing.T) {
	svc := &fakeClusterService{cluster: 0}

	body := `{
		"recency": 0,
		"frequency": 0,
		"monetary": 0,
		"avg_items": 0,
		"unique_products": 0,
		"wishlist_count": 0,
		"add_to_cart_count": 0,
		"page_views": 0
	}`
	rec := postPredict(t, svc, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.called, "zero is a valid value when the field is present")
}

func TestPredictFullRequest(t *testing.T) {
	svc := &fakeClusterService{cluster: 2}

	rec := postPredict(t, svc, fullBehaviorBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.called)
	assert.Equal(t, 100.0, svc.rec.Monetary)
	assert.Equal(t, 40.0, svc.rec.PageViews)
	assert.Contains(t, rec.Body.String(), `"cluster":2`)
}

func TestPredictRejectsNegativeValue(t *testing.T) {
	svc := &fakeClusterService{}

	body := strings.Replace(fullBehaviorBody, `"monetary": 100`, `"monetary": -1`, 1)
	rec := postPredict(t, svc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called)
}
