package medium_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/smartystreets/goconvey/convey"
)

func TestFile(t *testing.T) {
	convey.Convey("Given a file medium in a temp directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		f, err := medium.NewFile(dir)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When a key was never written", func() {
			_, err := f.Get(ctx, "missing")
			convey.So(err, convey.ShouldEqual, medium.ErrNotFound)
		})

		convey.Convey("When a value is written", func() {
			convey.So(f.Put(ctx, "athletes", []byte(`[{"name":"Jane"}]`)), convey.ShouldBeNil)

			convey.Convey("Then it reads back identically", func() {
				got, err := f.Get(ctx, "athletes")
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(got), convey.ShouldEqual, `[{"name":"Jane"}]`)
			})

			convey.Convey("And it lands as a .json file, with no temp files left over", func() {
				_, err := os.Stat(filepath.Join(dir, "athletes.json"))
				convey.So(err, convey.ShouldBeNil)

				leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(leftovers, convey.ShouldBeEmpty)
			})

			convey.Convey("And a second write replaces it", func() {
				convey.So(f.Put(ctx, "athletes", []byte(`[]`)), convey.ShouldBeNil)
				got, err := f.Get(ctx, "athletes")
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(got), convey.ShouldEqual, `[]`)
			})
		})

		convey.Convey("When a second medium opens the same directory", func() {
			convey.So(f.Put(ctx, "settings", []byte(`{"unitMode":"metric"}`)), convey.ShouldBeNil)

			g, err := medium.NewFile(dir)
			convey.So(err, convey.ShouldBeNil)
			got, err := g.Get(ctx, "settings")
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(got), convey.ShouldEqual, `{"unitMode":"metric"}`)
		})
	})

	convey.Convey("Given an empty root directory argument", t, func() {
		_, err := medium.NewFile("")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
