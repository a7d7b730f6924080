package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_planner/internal/controllers"
	"trip_planner/internal/models"
	"trip_planner/internal/money"
	"trip_planner/internal/planner"
	"trip_planner/internal/routes"
	"trip_planner/internal/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *planner.Planner) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	p := planner.New(store.NewMemory())
	format, err := money.NewFormatter("ILS", "he")
	require.NoError(t, err)

	r := routes.SetupRouter(
		controllers.NewRouteController(p),
		controllers.NewWaypointController(p),
		controllers.NewBudgetController(p, format),
		controllers.NewUploadController(p),
	)
	return r, p
}

func makeRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), out))
}

func TestRouteEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	t.Run("create and fetch a route", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/routes", gin.H{"name": "Negev loop"})
		assert.Equal(t, http.StatusCreated, resp.Code)

		var created struct {
			Route controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &created)
		assert.Equal(t, "Negev loop", created.Route.Name)
		assert.NotEmpty(t, created.Route.ID)
		assert.Equal(t, "0 hours", created.Route.Duration)

		resp = makeRequest(t, r, "GET", "/api/routes/"+created.Route.ID, nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		// Creating selects the route.
		resp = makeRequest(t, r, "GET", "/api/routes/active", nil)
		var active struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &active)
		require.NotNil(t, active.Route)
		assert.Equal(t, created.Route.ID, active.Route.ID)
	})

	t.Run("blank name is a 400", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/routes", gin.H{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("unknown route is a 404", func(t *testing.T) {
		resp := makeRequest(t, r, "GET", "/api/routes/no-such-id", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("selecting an unknown id clears the active route", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/routes/active/select", gin.H{"id": "no-such-id"})
		assert.Equal(t, http.StatusOK, resp.Code)

		resp = makeRequest(t, r, "GET", "/api/routes/active", nil)
		var active struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &active)
		assert.Nil(t, active.Route)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		resp := makeRequest(t, r, "DELETE", "/api/routes/no-such-id", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestWaypointEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	t.Run("adding a waypoint with no selection is a 409", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/routes/active/waypoints", gin.H{"name": "lost", "lat": 1.0, "lng": 2.0})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	makeRequest(t, r, "POST", "/api/routes", gin.H{"name": "walk"})

	t.Run("waypoints accumulate on the active route", func(t *testing.T) {
		for _, name := range []string{"A", "B", "C"} {
			resp := makeRequest(t, r, "POST", "/api/routes/active/waypoints", gin.H{"name": name, "lat": 32.1, "lng": 34.8})
			assert.Equal(t, http.StatusCreated, resp.Code)
		}

		resp := makeRequest(t, r, "GET", "/api/routes/active", nil)
		var active struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &active)
		require.NotNil(t, active.Route)
		assert.Len(t, active.Route.Waypoints, 3)
		assert.Equal(t, 90.0, active.Route.Distance)
		assert.Equal(t, "2 hours", active.Route.Duration)
		assert.NotEmpty(t, active.Route.Geometry)
	})

	t.Run("reorder moves a stop before the target", func(t *testing.T) {
		resp := makeRequest(t, r, "GET", "/api/routes/active", nil)
		var active struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &active)
		wps := active.Route.Waypoints

		resp = makeRequest(t, r, "POST", "/api/routes/active/reorder", gin.H{
			"moved_id":  wps[2].ID,
			"target_id": wps[0].ID,
		})
		assert.Equal(t, http.StatusOK, resp.Code)

		var after struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &after)
		assert.Equal(t, "C", after.Route.Waypoints[0].Name)
		assert.Equal(t, "A", after.Route.Waypoints[1].Name)
	})

	t.Run("optimize keeps the endpoints", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/routes/active/optimize", nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var after struct {
			Route *controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &after)
		require.Len(t, after.Route.Waypoints, 3)
		assert.Equal(t, "C", after.Route.Waypoints[0].Name)
		assert.Equal(t, "B", after.Route.Waypoints[2].Name)
	})

	t.Run("optimize below three stops is a 422", func(t *testing.T) {
		makeRequest(t, r, "POST", "/api/routes", gin.H{"name": "short"})
		resp := makeRequest(t, r, "POST", "/api/routes/active/optimize", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("updating an unknown waypoint is a 404", func(t *testing.T) {
		resp := makeRequest(t, r, "PUT", "/api/routes/active/waypoints/no-such-id", gin.H{"name": "x"})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestBudgetEndpoints(t *testing.T) {
	r, p := newTestServer(t)
	categories := p.Categories()
	require.NotEmpty(t, categories)

	t.Run("categories come with a status block", func(t *testing.T) {
		resp := makeRequest(t, r, "GET", "/api/budget/categories", nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Categories []controllers.CategoryResponse `json:"categories"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Categories, len(categories))
		assert.Equal(t, planner.BandOnTrack, body.Categories[0].Status.Band)
	})

	t.Run("record an expense and read the summary", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/budget/expenses", gin.H{
			"category_id": categories[0].ID,
			"amount":      150.0,
			"description": "bus pass",
		})
		assert.Equal(t, http.StatusCreated, resp.Code)

		var created struct {
			Expense models.Expense `json:"expense"`
		}
		decodeBody(t, resp, &created)
		assert.Equal(t, 150.0, created.Expense.Amount)

		resp = makeRequest(t, r, "GET", "/api/budget/summary", nil)
		var summary struct {
			Totals  planner.Totals    `json:"totals"`
			Display map[string]string `json:"display"`
		}
		decodeBody(t, resp, &summary)
		assert.Equal(t, 150.0, summary.Totals.TotalSpent)
		assert.Equal(t, summary.Totals.TotalBudget-summary.Totals.TotalSpent, summary.Totals.TotalRemaining)
		assert.NotEmpty(t, summary.Display["total_spent"])
	})

	t.Run("invalid expense payloads are 400s", func(t *testing.T) {
		for _, payload := range []gin.H{
			{"category_id": "", "amount": 10.0, "description": "x"},
			{"category_id": categories[0].ID, "amount": 0.0, "description": "x"},
			{"category_id": categories[0].ID, "amount": 10.0, "description": ""},
		} {
			resp := makeRequest(t, r, "POST", "/api/budget/expenses", payload)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		}
	})

	t.Run("unknown category is a 404", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/budget/expenses", gin.H{
			"category_id": "no-such-category",
			"amount":      10.0,
			"description": "x",
		})
		assert.Equal(t, http.StatusNotFound, resp.Code)

		resp = makeRequest(t, r, "PUT", "/api/budget/categories/no-such-category", gin.H{"budget": 100.0})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("setting a negative budget is a 400", func(t *testing.T) {
		resp := makeRequest(t, r, "PUT", "/api/budget/categories/"+categories[0].ID, gin.H{"budget": -5.0})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func uploadFile(t *testing.T, r *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestUploadEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	routeJSON := []byte(`{"name":"Imported","waypoints":[{"name":"A","lat":1,"lng":2,"notes":"n"},{"name":"B","lat":3,"lng":4}]}`)

	t.Run("upload, import, and keep the file", func(t *testing.T) {
		resp := uploadFile(t, r, "trip.json", routeJSON)
		assert.Equal(t, http.StatusCreated, resp.Code)

		var uploaded struct {
			File models.UploadedFile `json:"file"`
		}
		decodeBody(t, resp, &uploaded)
		assert.Equal(t, "json", uploaded.File.Type)
		assert.Equal(t, int64(len(routeJSON)), uploaded.File.Size)

		resp = makeRequest(t, r, "POST", "/api/uploads/"+uploaded.File.ID+"/import", nil)
		assert.Equal(t, http.StatusCreated, resp.Code)

		var imported struct {
			Route controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &imported)
		assert.Equal(t, "Imported", imported.Route.Name)
		require.Len(t, imported.Route.Waypoints, 2)
		assert.Equal(t, "A", imported.Route.Waypoints[0].Name)
		assert.Equal(t, "n", imported.Route.Waypoints[0].Notes)

		// The file is still listed after the import.
		resp = makeRequest(t, r, "GET", "/api/uploads", nil)
		var listed struct {
			Files []models.UploadedFile `json:"files"`
		}
		decodeBody(t, resp, &listed)
		assert.Len(t, listed.Files, 1)
	})

	t.Run("unsupported extensions are rejected", func(t *testing.T) {
		resp := uploadFile(t, r, "notes.txt", []byte("hello"))
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("malformed json import is a 422", func(t *testing.T) {
		resp := uploadFile(t, r, "broken.json", []byte(`{"name": "broken`))
		require.Equal(t, http.StatusCreated, resp.Code)
		var uploaded struct {
			File models.UploadedFile `json:"file"`
		}
		decodeBody(t, resp, &uploaded)

		resp = makeRequest(t, r, "POST", "/api/uploads/"+uploaded.File.ID+"/import", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("a gpx file with nothing usable imports as an empty route", func(t *testing.T) {
		resp := uploadFile(t, r, "empty.gpx", []byte("not really gpx"))
		require.Equal(t, http.StatusCreated, resp.Code)
		var uploaded struct {
			File models.UploadedFile `json:"file"`
		}
		decodeBody(t, resp, &uploaded)

		resp = makeRequest(t, r, "POST", "/api/uploads/"+uploaded.File.ID+"/import", nil)
		assert.Equal(t, http.StatusCreated, resp.Code)

		var imported struct {
			Route controllers.RouteResponse `json:"route"`
		}
		decodeBody(t, resp, &imported)
		assert.Equal(t, "Route from empty.gpx", imported.Route.Name)
		assert.Empty(t, imported.Route.Waypoints)
	})

	t.Run("importing an unknown file is a 404", func(t *testing.T) {
		resp := makeRequest(t, r, "POST", "/api/uploads/no-such-id/import", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("deleting an upload is idempotent", func(t *testing.T) {
		resp := makeRequest(t, r, "DELETE", "/api/uploads/no-such-id", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
