package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const catalogFixture = `[
  {
    "id": "loft",
    "name": "Loft Bar",
    "address": "Gumpendorfer Str. 1",
    "lat": 48.198,
    "lng": 16.352,
    "category": "cocktailbar",
    "zip": "1060",
    "featured": true,
    "deals": [
      { "days": [1,2,3,4,5], "from": "17:00", "to": "19:00", "text": "2-for-1 cocktails" },
      { "days": [5,6], "from": "22:00", "to": "02:00", "text": "late night shots" }
    ]
  },
  {
    "id": "krypt",
    "name": "Krypt",
    "address": "Berggasse 9",
    "lat": 48.218,
    "lng": 16.358,
    "category": "cocktailbar",
    "zip": "1090",
    "deal": { "days": [4,5], "from": "18:00", "to": "20:00", "text": "house spritz" }
  },
  {
    "id": "mel",
    "name": "Mel's Craft Beers",
    "address": "Wipplingerstr. 21",
    "lat": 48.213,
    "lng": 16.370,
    "category": "pub",
    "zip": "1010"
  }
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a catalog file with three venues", t, func() {
		path := writeCatalog(t, catalogFixture)
		store, err := NewFileStore(ctx, path)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When the snapshot is read", func() {
			venues := store.Snapshot(ctx)

			Convey("Then all venues are present with normalized deals", func() {
				So(venues, ShouldHaveLength, 3)
				So(store.Count(ctx), ShouldEqual, 3)
				So(store.DealCount(ctx), ShouldEqual, 3)
			})
		})

		Convey("When a venue is fetched by id", func() {
			v, err := store.ByID(ctx, "krypt")

			Convey("Then the legacy single-deal form is normalized", func() {
				So(err, ShouldBeNil)
				So(v.Name, ShouldEqual, "Krypt")
				So(v.Deals, ShouldHaveLength, 1)
				So(v.Deals[0].From, ShouldEqual, "18:00")
			})
		})

		Convey("When an unknown id is fetched", func() {
			_, err := store.ByID(ctx, "nope")

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When categories and areas are listed", func() {
			Convey("Then they are distinct and sorted", func() {
				So(store.Categories(ctx), ShouldResemble, []string{"cocktailbar", "pub"})
				So(store.Areas(ctx), ShouldResemble, []string{"1010", "1060", "1090"})
			})
		})

		Convey("When the file changes and the store reloads", func() {
			err := os.WriteFile(path, []byte(`[{"id":"solo","name":"Solo","lat":1,"lng":2,"category":"pub","zip":"1020"}]`), 0o600)
			So(err, ShouldBeNil)
			So(store.Reload(ctx), ShouldBeNil)

			Convey("Then the new snapshot is published", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				_, err := store.ByID(ctx, "loft")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a reload fails on a broken file", func() {
			So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
			err := store.Reload(ctx)

			Convey("Then the previous snapshot stays live", func() {
				So(err, ShouldNotBeNil)
				So(store.Count(ctx), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a missing catalog file", t, func() {
		_, err := NewFileStore(ctx, filepath.Join(t.TempDir(), "missing.json"))

		Convey("Then construction fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an empty catalog file", t, func() {
		path := writeCatalog(t, "[]")
		_, err := NewFileStore(ctx, path)

		Convey("Then ErrEmptyCatalog is returned", func() {
			So(errors.Is(err, ErrEmptyCatalog), ShouldBeTrue)
		})
	})
}
