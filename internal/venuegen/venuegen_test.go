package venuegen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/bardeals/happyhour/internal/domain/dealtime"
	"github.com/bardeals/happyhour/internal/domain/model"
	"github.com/bardeals/happyhour/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGenerateVenues(t *testing.T) {
	convey.Convey("Given a generation config", t, func() {
		config := &Config{NumVenues: 50}
		stats := &Stats{}

		convey.Convey("When generating venues", func() {
			venues, err := generateVenues(context.Background(), config, stats)

			convey.Convey("Then the requested number of venues is produced", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(venues, convey.ShouldHaveLength, 50)
				convey.So(stats.VenuesGenerated, convey.ShouldEqual, 50)
			})

			convey.Convey("And every venue has a usable shape", func() {
				convey.So(err, convey.ShouldBeNil)
				seen := make(map[string]bool)
				for _, v := range venues {
					convey.So(v.ID, convey.ShouldNotBeEmpty)
					convey.So(seen[v.ID], convey.ShouldBeFalse)
					seen[v.ID] = true

					convey.So(v.Name, convey.ShouldNotBeEmpty)
					convey.So(v.Zip, convey.ShouldBeIn, viennaZips)
					convey.So(v.Lat, convey.ShouldBeBetween, viennaLatMin, viennaLatMin+viennaLatRange)
					convey.So(v.Lng, convey.ShouldBeBetween, viennaLngMin, viennaLngMin+viennaLngRange)
				}
			})

			convey.Convey("And every generated window parses at minute resolution", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, v := range venues {
					for _, d := range v.Deals {
						_, okFrom := dealtime.ToMinutes(d.From)
						_, okTo := dealtime.ToMinutes(d.To)
						convey.So(okFrom, convey.ShouldBeTrue)
						convey.So(okTo, convey.ShouldBeTrue)
						convey.So(d.Days, convey.ShouldNotBeEmpty)
						convey.So(d.Text, convey.ShouldNotBeEmpty)
					}
				}
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			venues, err := generateVenues(ctx, config, stats)

			convey.Convey("Then generation aborts", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(venues, convey.ShouldBeNil)
			})
		})
	})
}

func TestWriteCatalog(t *testing.T) {
	convey.Convey("Given generated venues", t, func() {
		config := &Config{NumVenues: 10}
		stats := &Stats{}
		venues, err := generateVenues(context.Background(), config, stats)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When writing the catalog to a file", func() {
			config.OutputFile = filepath.Join(t.TempDir(), "catalog.json")
			filename, err := writeCatalog(context.Background(), config, venues)

			convey.Convey("Then the file round-trips into the catalog shape", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(filename, convey.ShouldEqual, config.OutputFile)

				data, readErr := os.ReadFile(filename)
				convey.So(readErr, convey.ShouldBeNil)

				var loaded []model.Venue
				convey.So(json.Unmarshal(data, &loaded), convey.ShouldBeNil)
				convey.So(loaded, convey.ShouldHaveLength, len(venues))
				convey.So(loaded[0].ID, convey.ShouldEqual, venues[0].ID)
			})
		})

		convey.Convey("When writing an empty catalog", func() {
			_, err := writeCatalog(context.Background(), &Config{}, nil)

			convey.Convey("Then it fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
