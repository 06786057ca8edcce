package model_test

import (
	"encoding/json"
	"testing"

	"github.com/bardeals/happyhour/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVenueUnmarshal(t *testing.T) {
	Convey("Given venue JSON with a deals array", t, func() {
		raw := `{
			"id": "v1",
			"name": "Kleines Cafe",
			"address": "Franziskanerplatz 3",
			"lat": 48.2082,
			"lng": 16.3738,
			"category": "cocktails",
			"zip": "1010",
			"featured": true,
			"deals": [
				{"days": [1,2,3,4,5], "from": "17:00", "to": "19:00", "text": "2-for-1 spritz"},
				{"days": [5,6], "from": "22:00", "to": "02:00", "text": "late night shots"}
			]
		}`

		Convey("When decoding", func() {
			var v model.Venue
			err := json.Unmarshal([]byte(raw), &v)

			Convey("Then all fields should decode", func() {
				So(err, ShouldBeNil)
				So(v.ID, ShouldEqual, "v1")
				So(v.Name, ShouldEqual, "Kleines Cafe")
				So(v.Featured, ShouldBeTrue)
				So(v.Zip, ShouldEqual, "1010")
				So(v.Deals, ShouldHaveLength, 2)
				So(v.Deals[1].From, ShouldEqual, "22:00")
				So(v.Deals[1].To, ShouldEqual, "02:00")
			})
		})
	})

	Convey("Given venue JSON with a legacy single deal object", t, func() {
		raw := `{
			"id": "v2",
			"name": "Altes Fassl",
			"address": "Ziegelofengasse 37",
			"lat": 48.19,
			"lng": 16.36,
			"deal": {"days": [0,1,2,3,4,5,6], "from": "16:00", "to": "18:00", "text": "half price beer"}
		}`

		Convey("When decoding", func() {
			var v model.Venue
			err := json.Unmarshal([]byte(raw), &v)

			Convey("Then the legacy deal should be normalized into the list", func() {
				So(err, ShouldBeNil)
				So(v.Deals, ShouldHaveLength, 1)
				So(v.Deals[0].Text, ShouldEqual, "half price beer")
				So(v.Deals[0].Days, ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6})
			})
		})
	})

	Convey("Given venue JSON with both shapes present", t, func() {
		raw := `{
			"id": "v3",
			"name": "Doppelgaenger",
			"lat": 48.2, "lng": 16.37,
			"deal": {"days": [1], "from": "12:00", "to": "14:00", "text": "legacy"},
			"deals": [{"days": [2], "from": "18:00", "to": "20:00", "text": "current"}]
		}`

		Convey("When decoding", func() {
			var v model.Venue
			err := json.Unmarshal([]byte(raw), &v)

			Convey("Then the deals array should win", func() {
				So(err, ShouldBeNil)
				So(v.Deals, ShouldHaveLength, 1)
				So(v.Deals[0].Text, ShouldEqual, "current")
			})
		})
	})

	Convey("Given venue JSON with no deal information at all", t, func() {
		raw := `{"id": "v4", "name": "Stilles Eck", "lat": 48.21, "lng": 16.38}`

		Convey("When decoding", func() {
			var v model.Venue
			err := json.Unmarshal([]byte(raw), &v)

			Convey("Then the deal list should be empty, not nil-crashing", func() {
				So(err, ShouldBeNil)
				So(v.Deals, ShouldHaveLength, 0)
			})
		})
	})
}
