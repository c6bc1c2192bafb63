package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/curio/internal/adapters/repository"
	service "github.com/okian/curio/internal/app"
	"github.com/okian/curio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("When starting it", func() {
			err := svc.Start(ctx)
			defer svc.Stop()

			Convey("Then it should start cleanly with an empty store", func() {
				So(err, ShouldBeNil)
				So(svc.ListItems(ctx), ShouldBeEmpty)
			})

			Convey("And starting again should be a no-op", func() {
				So(err, ShouldBeNil)
				So(svc.Start(ctx), ShouldBeNil)
			})
		})

		Convey("When starting with seed items", func() {
			seeded := service.New(service.WithSeedItems([]string{"apple", "banana", "apple"}))
			So(seeded.Start(ctx), ShouldBeNil)
			defer seeded.Stop()

			Convey("Then unique seeds should be present and duplicates skipped", func() {
				items := seeded.ListItems(ctx)
				So(len(items), ShouldEqual, 2)
				So(items[0].Name, ShouldEqual, "apple")
				So(items[1].Name, ShouldEqual, "banana")
			})
		})
	})
}

func TestServiceCRUD(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(repository.NewMemStore(ctx)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When creating an item", func() {
			item, err := svc.CreateItem(ctx, "apple", nil)

			Convey("Then it should come back with id 1", func() {
				So(err, ShouldBeNil)
				So(item.ID, ShouldEqual, 1)
				So(item.Name, ShouldEqual, "apple")
			})

			Convey("And it should be retrievable with the same fields", func() {
				So(err, ShouldBeNil)
				got, err := svc.GetItem(ctx, item.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, item)
			})

			Convey("And creating the same name again should fail", func() {
				So(err, ShouldBeNil)
				_, err := svc.CreateItem(ctx, "Apple", nil)
				So(errors.Is(err, repository.ErrDuplicateName), ShouldBeTrue)
			})
		})

		Convey("When deleting an item", func() {
			item, err := svc.CreateItem(ctx, "banana", nil)
			So(err, ShouldBeNil)

			Convey("Then the delete should succeed and the item disappear", func() {
				So(svc.DeleteItem(ctx, item.ID), ShouldBeNil)
				_, err := svc.GetItem(ctx, item.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And deleting an unknown id should report not found", func() {
				So(errors.Is(svc.DeleteItem(ctx, 404), repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When asking for stats", func() {
			_, err := svc.CreateItem(ctx, "cherry", nil)
			So(err, ShouldBeNil)
			stats := svc.GetStats()

			Convey("Then the item count should be reported", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["itemCount"], ShouldEqual, 1)
			})
		})
	})
}
