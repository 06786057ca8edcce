package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bardeals/happyhour/internal/adapters/geocode"
	"github.com/bardeals/happyhour/internal/adapters/repository"
	service "github.com/bardeals/happyhour/internal/app"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/internal/domain/types"
)

// mockService implements Dependencies and StatsProvider for handler tests.
type mockService struct {
	results    []Result
	resultsErr error

	venue    Result
	venueErr error

	random    Result
	randomErr error

	categories []string
	areas      []string

	accepted  model.Submission
	duplicate bool
	acceptErr error
	gotSub    model.Submission

	geo    *geocode.Result
	geoErr error

	gotQuery Query
}

func (m *mockService) Results(_ context.Context, q Query) ([]Result, error) {
	m.gotQuery = q
	return m.results, m.resultsErr
}

func (m *mockService) Venue(_ context.Context, _ string, q Query) (Result, error) {
	m.gotQuery = q
	return m.venue, m.venueErr
}

func (m *mockService) Random(_ context.Context, q Query) (Result, error) {
	m.gotQuery = q
	return m.random, m.randomErr
}

func (m *mockService) Categories(_ context.Context) ([]string, error) {
	return m.categories, nil
}

func (m *mockService) Areas(_ context.Context) ([]string, error) {
	return m.areas, nil
}

func (m *mockService) Accept(_ context.Context, sub model.Submission) (model.Submission, bool, error) {
	m.gotSub = sub
	return m.accepted, m.duplicate, m.acceptErr
}

func (m *mockService) Geocode(_ context.Context, _ string) (*geocode.Result, error) {
	return m.geo, m.geoErr
}

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(m *mockService) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(m, m, 200).Register(context.Background(), mux)
	return mux
}

func sampleResult(id, name string) Result {
	return Result{
		Venue:  model.Venue{ID: id, Name: name, Category: "pub", Zip: "1010"},
		Status: types.StatusOpen,
		Label:  "Open now",
	}
}

func TestHandleGetVenues(t *testing.T) {
	Convey("Given the venues endpoint", t, func() {
		m := &mockService{results: []Result{sampleResult("loft", "Loft Bar")}}
		mux := newTestMux(m)

		Convey("When venues are listed with filters", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
				"/venues?category=pub&area=1010&time=later&lat=48.2&lng=16.37&show_all=1&limit=5", nil))

			Convey("Then the ranked results come back and the query is parsed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var results []Result
				So(json.Unmarshal(rec.Body.Bytes(), &results), ShouldBeNil)
				So(results, ShouldHaveLength, 1)
				So(results[0].Venue.ID, ShouldEqual, "loft")
				So(results[0].Label, ShouldEqual, "Open now")

				So(m.gotQuery.Category, ShouldEqual, "pub")
				So(m.gotQuery.Area, ShouldEqual, "1010")
				So(m.gotQuery.Time, ShouldEqual, "later")
				So(m.gotQuery.ShowAll, ShouldBeTrue)
				So(m.gotQuery.Limit, ShouldEqual, 5)
				So(m.gotQuery.Location, ShouldNotBeNil)
				So(m.gotQuery.Location.Lat, ShouldAlmostEqual, 48.2, 1e-9)
			})
		})

		Convey("When an unknown time filter is passed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues?time=yesterday", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When only one coordinate is passed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues?lat=48.2", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the limit exceeds the cap", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues?limit=10000", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)

				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the method is wrong", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/venues", nil))

			Convey("Then the route responds not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHandleGetVenue(t *testing.T) {
	Convey("Given the venue detail endpoint", t, func() {
		m := &mockService{venue: sampleResult("loft", "Loft Bar")}
		mux := newTestMux(m)

		Convey("When an existing venue is fetched", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venue/loft", nil))

			Convey("Then the result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result Result
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Venue.ID, ShouldEqual, "loft")
			})
		})

		Convey("When the venue does not exist", func() {
			m.venueErr = repository.ErrNotFound
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venue/ghost", nil))

			Convey("Then a 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the id is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venue/", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHandleGetRandom(t *testing.T) {
	Convey("Given the random venue endpoint", t, func() {
		m := &mockService{random: sampleResult("krypt", "Krypt")}
		mux := newTestMux(m)

		Convey("When a random venue is drawn", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/random?time=now", nil))

			Convey("Then a single result is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result Result
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Venue.ID, ShouldEqual, "krypt")
			})
		})

		Convey("When nothing matches", func() {
			m.randomErr = service.ErrNoMatch
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/random", nil))

			Convey("Then a 404 with no_match is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)

				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "no_match")
			})
		})
	})
}

func TestHandleMeta(t *testing.T) {
	Convey("Given the metadata endpoints", t, func() {
		m := &mockService{
			categories: []string{"cocktailbar", "pub"},
			areas:      []string{"1010", "1060"},
		}
		mux := newTestMux(m)

		Convey("When categories are listed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/categories", nil))

			Convey("Then the sorted list is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var categories []string
				So(json.Unmarshal(rec.Body.Bytes(), &categories), ShouldBeNil)
				So(categories, ShouldResemble, []string{"cocktailbar", "pub"})
			})
		})

		Convey("When areas are listed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/areas", nil))

			Convey("Then the sorted list is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var areas []string
				So(json.Unmarshal(rec.Body.Bytes(), &areas), ShouldBeNil)
				So(areas, ShouldResemble, []string{"1010", "1060"})
			})
		})
	})
}

func TestHandlePostSubmission(t *testing.T) {
	Convey("Given the submissions endpoint", t, func() {
		m := &mockService{accepted: model.Submission{ID: "sub-1"}}
		mux := newTestMux(m)

		post := func(body string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When a valid submission is posted", func() {
			rec := post(`{"kind":"new_bar","bar_name":"Loft Bar","address":"Gumpendorfer Str. 1"}`)

			Convey("Then it is accepted with its id", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var ack ackResponse
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.SubmissionID, ShouldEqual, "sub-1")
				So(ack.Duplicate, ShouldBeFalse)
				So(m.gotSub.BarName, ShouldEqual, "Loft Bar")
			})
		})

		Convey("When the same tip is posted again", func() {
			m.duplicate = true
			rec := post(`{"kind":"new_bar","bar_name":"Loft Bar"}`)

			Convey("Then it is acknowledged as a duplicate", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var ack ackResponse
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "duplicate")
				So(ack.Duplicate, ShouldBeTrue)
			})
		})

		Convey("When the kind is unknown", func() {
			rec := post(`{"kind":"spam","bar_name":"Loft Bar"}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the bar name is missing", func() {
			rec := post(`{"kind":"new_bar"}`)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the queue is full", func() {
			m.acceptErr = service.ErrQueueFull
			rec := post(`{"kind":"new_bar","bar_name":"Loft Bar"}`)

			Convey("Then backpressure is signalled", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})
	})
}

func TestHandleGeocode(t *testing.T) {
	Convey("Given the geocode endpoint", t, func() {
		m := &mockService{geo: &geocode.Result{Lat: 48.2083, Lng: 16.3725, DisplayName: "Stephansplatz"}}
		mux := newTestMux(m)

		Convey("When a place is looked up", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode?q=Stephansplatz", nil))

			Convey("Then coordinates are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var res geocode.Result
				So(json.Unmarshal(rec.Body.Bytes(), &res), ShouldBeNil)
				So(res.DisplayName, ShouldEqual, "Stephansplatz")
			})
		})

		Convey("When no hits are found", func() {
			m.geo = nil
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode?q=nowhere", nil))

			Convey("Then a 404 is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the query is empty", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		m := &mockService{}
		mux := newTestMux(m)

		Convey("When stats are fetched", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the service stats are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldBeTrue)
			})
		})
	})
}
