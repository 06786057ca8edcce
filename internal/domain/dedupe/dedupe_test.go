package dedupe

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/bardeals/happyhour/internal/domain/model"
)

func TestFingerprint(t *testing.T) {
	Convey("Given two submissions for the same bar", t, func() {
		a := model.Submission{Kind: "new_bar", BarName: "Loft Bar", Address: "Gumpendorfer Str. 1"}
		b := model.Submission{Kind: "new_bar", BarName: "  loft  BAR ", Address: "gumpendorfer str. 1", Note: "great spritzers"}

		Convey("When fingerprinted", func() {
			Convey("Then casing, spacing and notes do not matter", func() {
				So(Fingerprint(a), ShouldEqual, Fingerprint(b))
			})
		})
	})

	Convey("Given submissions differing in kind or address", t, func() {
		base := model.Submission{Kind: "new_bar", BarName: "Loft Bar", Address: "Gumpendorfer Str. 1"}
		otherKind := base
		otherKind.Kind = "correction"
		otherAddr := base
		otherAddr.Address = "Gumpendorfer Str. 2"

		Convey("Then the fingerprints differ", func() {
			So(Fingerprint(base), ShouldNotEqual, Fingerprint(otherKind))
			So(Fingerprint(base), ShouldNotEqual, Fingerprint(otherAddr))
		})
	})
}

func TestSeenAndRecord(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := NewInMemoryDeduper()

		Convey("When the same fingerprint is recorded twice", func() {
			first := d.SeenAndRecord(ctx, "fp-1")
			second := d.SeenAndRecord(ctx, "fp-1")

			Convey("Then only the second call reports a duplicate", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a recorded fingerprint is unrecorded", func() {
			d.SeenAndRecord(ctx, "fp-2")
			d.Unrecord(ctx, "fp-2")

			Convey("Then it can be recorded again", func() {
				So(d.SeenAndRecord(ctx, "fp-2"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an unknown fingerprint is unrecorded", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then the size stays at zero", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a bounded deduper at capacity", t, func() {
		d := NewInMemoryDeduper(WithMaxSize(3))
		for i := 0; i < 3; i++ {
			d.SeenAndRecord(ctx, fmt.Sprintf("fp-%d", i))
		}

		Convey("When one more fingerprint arrives", func() {
			d.SeenAndRecord(ctx, "fp-new")

			Convey("Then the oldest entry is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "fp-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "fp-new"), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := NewInMemoryDeduper(WithMaxSize(0))

		Convey("When many fingerprints are recorded", func() {
			for i := 0; i < 100; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("fp-%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 100)
				So(d.SeenAndRecord(ctx, "fp-0"), ShouldBeTrue)
			})
		})
	})
}
