package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/adapters/notify"
	"github.com/taykof/vaultlog/internal/adapters/repository"
	"github.com/taykof/vaultlog/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testTime }

func strPtr(s string) *string { return &s }

func TestAthletesAdd(t *testing.T) {
	Convey("Given an athlete store over a fresh medium", t, func() {
		ctx := context.Background()
		store := repository.NewAthletes(medium.NewMemory(), repository.WithClock(testClock))

		Convey("When adding a valid athlete", func() {
			a, err := store.Add(ctx, repository.AthleteInput{Name: "  Jane  ", Sex: "female"})
			So(err, ShouldBeNil)

			Convey("Then the record is complete and trimmed", func() {
				So(a.Name, ShouldEqual, "Jane")
				So(a.Sex, ShouldEqual, "female")
				So(a.ID, ShouldNotBeEmpty)
				So(a.Note, ShouldEqual, "")
				So(a.PR, ShouldEqual, "")
				So(a.CreatedAt, ShouldEqual, testTime.UnixMilli())
			})

			Convey("And it persists", func() {
				all := store.GetAll(ctx)
				So(all, ShouldHaveLength, 1)
				So(all[0].ID, ShouldEqual, a.ID)
			})
		})

		Convey("When the name is empty or whitespace", func() {
			_, err := store.Add(ctx, repository.AthleteInput{Name: "   "})
			So(err, ShouldWrap, repository.ErrInvalidInput)

			Convey("Then nothing was written", func() {
				So(store.GetAll(ctx), ShouldBeEmpty)
			})
		})

		Convey("When sex is omitted", func() {
			a, err := store.Add(ctx, repository.AthleteInput{Name: "Kc"})
			So(err, ShouldBeNil)
			So(a.Sex, ShouldEqual, model.SexNotSet)
		})

		Convey("When adding several athletes", func() {
			first, err := store.Add(ctx, repository.AthleteInput{Name: "Jane"})
			So(err, ShouldBeNil)
			second, err := store.Add(ctx, repository.AthleteInput{Name: "Armand"})
			So(err, ShouldBeNil)

			Convey("Then both survive and ids differ", func() {
				So(first.ID, ShouldNotEqual, second.ID)
				So(store.GetAll(ctx), ShouldHaveLength, 2)
			})
		})
	})
}

func TestAthletesGetByID(t *testing.T) {
	Convey("Given a store with one athlete", t, func() {
		ctx := context.Background()
		store := repository.NewAthletes(medium.NewMemory())
		a, err := store.Add(ctx, repository.AthleteInput{Name: "Jane"})
		So(err, ShouldBeNil)

		Convey("Then lookups by id find it", func() {
			got, err := store.GetByID(ctx, a.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Jane")
		})

		Convey("And unknown ids report not found", func() {
			got, err := store.GetByID(ctx, "nope")
			So(err, ShouldEqual, repository.ErrNotFound)
			So(got, ShouldBeNil)
		})
	})
}

func TestAthletesUpdate(t *testing.T) {
	Convey("Given a store with one athlete", t, func() {
		ctx := context.Background()
		store := repository.NewAthletes(medium.NewMemory())
		a, err := store.Add(ctx, repository.AthleteInput{Name: "Jane", Sex: "female"})
		So(err, ShouldBeNil)

		Convey("When updating a subset of fields", func() {
			got, err := store.Update(ctx, a.ID, repository.AthleteUpdate{PR: strPtr(`12' 6"`)})
			So(err, ShouldBeNil)

			Convey("Then only those fields change", func() {
				So(got.PR, ShouldEqual, `12' 6"`)
				So(got.Name, ShouldEqual, "Jane")
				So(got.Sex, ShouldEqual, "female")
			})
		})

		Convey("When blanking the name", func() {
			_, err := store.Update(ctx, a.ID, repository.AthleteUpdate{Name: strPtr("  ")})
			So(err, ShouldWrap, repository.ErrInvalidInput)
		})

		Convey("When the id does not exist", func() {
			_, err := store.Update(ctx, "nope", repository.AthleteUpdate{Note: strPtr("x")})
			So(err, ShouldEqual, repository.ErrNotFound)

			Convey("Then no record was created", func() {
				So(store.GetAll(ctx), ShouldHaveLength, 1)
			})
		})
	})
}

func TestAthletesRemove(t *testing.T) {
	Convey("Given a store with two athletes", t, func() {
		ctx := context.Background()
		store := repository.NewAthletes(medium.NewMemory())
		a, err := store.Add(ctx, repository.AthleteInput{Name: "Jane"})
		So(err, ShouldBeNil)
		_, err = store.Add(ctx, repository.AthleteInput{Name: "Armand"})
		So(err, ShouldBeNil)

		Convey("When removing one", func() {
			remaining, err := store.Remove(ctx, a.ID)
			So(err, ShouldBeNil)
			So(remaining, ShouldHaveLength, 1)
			So(remaining[0].Name, ShouldEqual, "Armand")
		})

		Convey("When removing an unknown id", func() {
			remaining, err := store.Remove(ctx, "nope")
			So(err, ShouldBeNil)
			So(remaining, ShouldHaveLength, 2)
		})
	})
}

func TestAthletesCorruptCollection(t *testing.T) {
	Convey("Given a medium holding unparseable bytes", t, func() {
		ctx := context.Background()
		mem := medium.NewMemory()
		So(mem.Put(ctx, repository.KeyAthletes, []byte("{not json")), ShouldBeNil)
		store := repository.NewAthletes(mem)

		Convey("Then reads treat the collection as empty", func() {
			So(store.GetAll(ctx), ShouldBeEmpty)
		})

		Convey("And the next write starts over cleanly", func() {
			_, err := store.Add(ctx, repository.AthleteInput{Name: "Jane"})
			So(err, ShouldBeNil)
			So(store.GetAll(ctx), ShouldHaveLength, 1)
		})
	})
}

func TestAthletesWriteFailure(t *testing.T) {
	Convey("Given a medium with no room left", t, func() {
		ctx := context.Background()
		notifier := notify.New()
		events := notifier.Subscribe()
		store := repository.NewAthletes(
			medium.NewMemory(medium.WithMaxBytes(1)),
			repository.WithNotifier(notifier),
		)

		Convey("When a write fails", func() {
			a, err := store.Add(ctx, repository.AthleteInput{Name: "Jane"})

			Convey("Then the caller sees the medium error", func() {
				So(err, ShouldWrap, medium.ErrQuotaExceeded)
				So(a, ShouldBeNil)
			})

			Convey("And a degraded event was published", func() {
				select {
				case e := <-events:
					So(e.Collection, ShouldEqual, "athletes")
					So(e.Message, ShouldNotBeEmpty)
					So(e.Err, ShouldWrap, medium.ErrQuotaExceeded)
				default:
					t.Fatal("no degraded event published")
				}
			})
		})
	})
}
