package model

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeName(t *testing.T) {
	Convey("Given item names in various shapes", t, func() {
		cases := map[string]string{
			"apple":      "apple",
			"  apple  ":  "apple",
			"Apple":      "apple",
			"  BaNaNa  ": "banana",
			"":           "",
			"   ":        "",
		}

		Convey("When normalizing", func() {
			for in, want := range cases {
				So(NormalizeName(in), ShouldEqual, want)
			}
		})
	})
}

func TestItemJSON(t *testing.T) {
	Convey("Given an item without a description", t, func() {
		item := Item{ID: 1, Name: "apple"}

		Convey("When marshaled", func() {
			data, err := json.Marshal(item)
			So(err, ShouldBeNil)

			Convey("Then description should be omitted", func() {
				So(string(data), ShouldEqual, `{"id":1,"name":"apple"}`)
			})
		})
	})

	Convey("Given an item with a description", t, func() {
		desc := "a red fruit"
		item := Item{ID: 2, Name: "apple", Description: &desc}

		Convey("When marshaled", func() {
			data, err := json.Marshal(item)
			So(err, ShouldBeNil)

			Convey("Then all fields should appear", func() {
				So(string(data), ShouldEqual, `{"id":2,"name":"apple","description":"a red fruit"}`)
			})
		})
	})
}
