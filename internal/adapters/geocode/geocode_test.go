package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	logging "github.com/bardeals/happyhour/pkg/logger"
)

const nominatimHit = `[
  {
    "lat": "48.2083537",
    "lon": "16.3725042",
    "display_name": "Stephansplatz, Innere Stadt, Wien, 1010, Austria"
  }
]`

func TestLookup(t *testing.T) {
	_ = logging.Init()
	ctx := context.Background()

	Convey("Given an upstream that returns a hit", t, func() {
		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(nominatimHit)) //nolint:errcheck
		}))
		defer srv.Close()

		client := NewClient(WithBaseURL(srv.URL), WithEmail("ops@example.com"))

		Convey("When a place is looked up", func() {
			res, err := client.Lookup(ctx, "Stephansplatz, Vienna")

			Convey("Then coordinates and display name are returned", func() {
				So(err, ShouldBeNil)
				So(res, ShouldNotBeNil)
				So(res.Lat, ShouldAlmostEqual, 48.2083537, 1e-6)
				So(res.Lng, ShouldAlmostEqual, 16.3725042, 1e-6)
				So(res.DisplayName, ShouldContainSubstring, "Stephansplatz")
				So(gotQuery, ShouldEqual, "Stephansplatz, Vienna")
			})
		})
	})

	Convey("Given an upstream with no hits", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]")) //nolint:errcheck
		}))
		defer srv.Close()

		client := NewClient(WithBaseURL(srv.URL))

		Convey("When a place is looked up", func() {
			res, err := client.Lookup(ctx, "nowhere at all")

			Convey("Then no result and no error are returned", func() {
				So(err, ShouldBeNil)
				So(res, ShouldBeNil)
			})
		})
	})

	Convey("Given a failing upstream", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := NewClient(WithBaseURL(srv.URL))

		Convey("When a place is looked up", func() {
			_, err := client.Lookup(ctx, "Stephansplatz")

			Convey("Then the upstream error surfaces", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
