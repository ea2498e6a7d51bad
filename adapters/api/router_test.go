package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
)

type staticFigure struct{ fig *chart.Figure }

func (s staticFigure) Current() *chart.Figure { return s.fig }

func newFigure() *chart.Figure {
	return &chart.Figure{
		Style:      chart.DefaultStyle(),
		Visibility: benchmark.NewVisibility(),
		Series: []benchmark.Series{
			{ID: 0, Column: "FrameTime (ms)", Label: "FrameTime", Color: "#1f77b4"},
			{ID: 1, Column: "PresentTime (ms)", Label: "PresentTime", Color: "#ff7f0e"},
		},
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ListSeries(t *testing.T) {
	h := NewRouter(staticFigure{newFigure()}, nil)

	rec := do(t, h, http.MethodGet, "/series", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []benchmark.Series
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].Visible)
	assert.Equal(t, "PresentTime", got[1].Label)
}

func TestRouter_ToggleOnlyTouchesOneSeries(t *testing.T) {
	fig := newFigure()
	h := NewRouter(staticFigure{fig}, nil)

	rec := do(t, h, http.MethodPost, "/series/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"visible":false}`, rec.Body.String())
	assert.False(t, fig.Visibility.Visible(1))
	assert.True(t, fig.Visibility.Visible(0))

	rec = do(t, h, http.MethodPost, "/series/1/toggle", "")
	assert.JSONEq(t, `{"id":1,"visible":true}`, rec.Body.String())
}

func TestRouter_SetVisibility(t *testing.T) {
	fig := newFigure()
	h := NewRouter(staticFigure{fig}, nil)

	rec := do(t, h, http.MethodPut, "/series/0/visibility", `{"visible":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fig.Visibility.Visible(0))

	rec = do(t, h, http.MethodGet, "/visibility", "")
	assert.JSONEq(t, `{"hidden":[0]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/series/0", "")
	var s benchmark.Series
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	assert.False(t, s.Visible)
}

func TestRouter_Errors(t *testing.T) {
	h := NewRouter(staticFigure{newFigure()}, nil)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/series/abc/toggle", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/series/7/toggle", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/series/0/visibility", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/series/0/visibility", `nope`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodDelete, "/series/0", "").Code)
}

func TestRouter_NoFigure(t *testing.T) {
	h := NewRouter(staticFigure{}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/series", "").Code)
}
