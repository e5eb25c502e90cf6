package identity_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ruanlop/placarlive/internal/domain/identity"
)

func TestCompute(t *testing.T) {
	Convey("Given the identity hasher", t, func() {
		Convey("When two records differ only in whitespace, punctuation and case", func() {
			a := identity.Compute("45", "GOOOL! Home scores, 1 a 0", "goal")
			b := identity.Compute("45", "goool   home SCORES 1 a 0!!!", "goal")

			Convey("Then they yield the same identity", func() {
				So(a, ShouldEqual, b)
			})
		})

		Convey("When the minute carries decoration", func() {
			a := identity.Compute("45'", "lance", "normal")
			b := identity.Compute("45", "lance", "normal")
			c := identity.Compute("min 45", "lance", "normal")

			Convey("Then only the digits matter", func() {
				So(a, ShouldEqual, b)
				So(c, ShouldEqual, b)
			})
		})

		Convey("When descriptions differ past the truncation point", func() {
			base := strings.Repeat("a ", 60) // 120 runes normalized
			a := identity.Compute("10", base+"trailing text one", "goal")
			b := identity.Compute("10", base+"completely different tail", "goal")

			Convey("Then the trailing variation does not change the identity", func() {
				So(a, ShouldEqual, b)
			})
		})

		Convey("When descriptions differ within the first 100 characters", func() {
			a := identity.Compute("10", "home team scores first", "goal")
			b := identity.Compute("10", "away team scores first", "goal")

			Convey("Then the identities differ", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When only the category differs", func() {
			a := identity.Compute("10", "same text", "goal")
			b := identity.Compute("10", "same text", "yellow")

			Convey("Then the identities differ", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When only the minute differs", func() {
			a := identity.Compute("10", "same text", "goal")
			b := identity.Compute("11", "same text", "goal")

			Convey("Then the identities differ", func() {
				So(a, ShouldNotEqual, b)
			})
		})

		Convey("When the description carries accented letters", func() {
			a := identity.Compute("30", "Pênalti para o Grêmio", "penalty")
			b := identity.Compute("30", "pênalti  para o grêmio...", "penalty")
			c := identity.Compute("30", "Penalti para o Gremio", "penalty")

			Convey("Then accents are preserved, not stripped", func() {
				So(a, ShouldEqual, b)
				So(a, ShouldNotEqual, c)
			})
		})

		Convey("When everything is empty", func() {
			id := identity.Compute("", "", "")

			Convey("Then a stable identity still comes out", func() {
				So(id, ShouldNotBeEmpty)
				So(id, ShouldEqual, identity.Compute("", "", ""))
			})
		})
	})
}
