// Command canteen-seed writes a sample seed file for the canteen server.
// The output is a JSON document with menu items and users, gzip-compressed
// when the output path ends in .gz, and is consumed via CANTEEN_SEED_FILES.
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"
)

type seedItem struct {
	id, name, description, price, itemType string
	amountAvailable                        int
}

type seedUser struct {
	id, name, yearLevel string
}

var sampleMenu = []seedItem{
	{"flat-white", "Flat White", "Double shot with steamed milk", "4.50", "drink", 40},
	{"hot-choc", "Hot Chocolate", "Milk chocolate, whipped cream", "3.50", "drink", 40},
	{"toastie", "Cheese Toastie", "Tasty cheese on sourdough", "6.00", "food", 25},
	{"sausage-roll", "Sausage Roll", "Flaky pastry, tomato sauce", "5.00", "food", 30},
	{"fruit-cup", "Fruit Cup", "Seasonal fruit, cut fresh daily", "3.00", "food", 20},
	{"anzac", "Anzac Biscuit", "Oats and golden syrup", "2.00", "snack", 50},
}

var sampleUsers = []seedUser{
	{"u-alice", "Alice Nguyen", "7"},
	{"u-bruno", "Bruno Costa", "9"},
	{"u-chloe", "Chloe Park", "12"},
}

func main() {
	var out string
	flag.StringVar(&out, "out", "seed.json.gz", "output seed file path")
	flag.Parse()

	if err := run(out); err != nil {
		slog.Error("seed generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("seed file written", slog.String("path", out))
}

func run(out string) error {
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() { _ = f.Close() }()

	var w io.Writer = f
	var gz *pgzip.Writer
	if strings.HasSuffix(out, ".gz") {
		gz = pgzip.NewWriter(f)
		w = gz
	}

	if _, err := w.Write(encodeSeed()); err != nil {
		return errors.Wrap(err, "write seed")
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return errors.Wrap(err, "close gzip writer")
		}
	}
	return f.Close()
}

func encodeSeed() []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("menu", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range sampleMenu {
					e.Obj(func(e *jx.Encoder) {
						e.Field("id", func(e *jx.Encoder) { e.Str(it.id) })
						e.Field("name", func(e *jx.Encoder) { e.Str(it.name) })
						e.Field("description", func(e *jx.Encoder) { e.Str(it.description) })
						e.Field("price", func(e *jx.Encoder) { e.Str(it.price) })
						e.Field("type", func(e *jx.Encoder) { e.Str(it.itemType) })
						e.Field("amountAvailable", func(e *jx.Encoder) { e.Int(it.amountAvailable) })
					})
				}
			})
		})
		e.Field("users", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, u := range sampleUsers {
					e.Obj(func(e *jx.Encoder) {
						e.Field("id", func(e *jx.Encoder) { e.Str(u.id) })
						e.Field("name", func(e *jx.Encoder) { e.Str(u.name) })
						e.Field("yearLevel", func(e *jx.Encoder) { e.Str(u.yearLevel) })
					})
				}
			})
		})
	})
	return e.Bytes()
}
