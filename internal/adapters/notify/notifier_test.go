package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taykof/vaultlog/internal/adapters/notify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNotifier(t *testing.T) {
	Convey("Given a notifier with subscribers", t, func() {
		ctx := context.Background()
		n := notify.New()
		first := n.Subscribe()
		second := n.Subscribe()

		Convey("When an event is published", func() {
			cause := errors.New("disk full")
			n.Publish(ctx, notify.Event{
				Collection: "jumps",
				Message:    "Changes could not be saved.",
				Err:        cause,
			})

			Convey("Then every subscriber receives it", func() {
				e := <-first
				So(e.Collection, ShouldEqual, "jumps")
				So(e.Err, ShouldEqual, cause)
				So(e.At.IsZero(), ShouldBeFalse)

				e = <-second
				So(e.Collection, ShouldEqual, "jumps")
			})
		})

		Convey("When a subscriber stops draining", func() {
			full := n.Subscribe()
			for i := 0; i < cap(full)+5; i++ {
				n.Publish(ctx, notify.Event{Collection: "athletes"})
			}

			Convey("Then publishing never blocked and the buffer holds its cap", func() {
				So(len(full), ShouldEqual, cap(full))
			})
		})

		Convey("When the notifier closes", func() {
			So(n.Close(), ShouldBeNil)

			Convey("Then subscriber channels close", func() {
				_, open := <-first
				So(open, ShouldBeFalse)
			})

			Convey("And publishing afterwards is a no-op", func() {
				n.Publish(ctx, notify.Event{Collection: "jumps"})
			})

			Convey("And a late subscriber gets an already-closed channel", func() {
				late := n.Subscribe()
				_, open := <-late
				So(open, ShouldBeFalse)
			})

			Convey("And closing twice is safe", func() {
				So(n.Close(), ShouldBeNil)
			})
		})
	})

	Convey("Given a notifier with a custom buffer size", t, func() {
		n := notify.New(notify.WithBufferSize(2))
		ch := n.Subscribe()
		So(cap(ch), ShouldEqual, 2)

		Convey("Then a preset timestamp is preserved", func() {
			at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
			n.Publish(context.Background(), notify.Event{At: at})
			e := <-ch
			So(e.At.Equal(at), ShouldBeTrue)
		})
	})
}
