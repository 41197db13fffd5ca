// Package seed loads the initial catalog and user set from JSON seed files at
// startup. Seeding is a startup convenience, not persistence: nothing is ever
// written back, and the service still starts empty without seed files.
package seed

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
)

// Item is one seeded menu entry. Price is a decimal string; AmountAvailable
// defaults to 1 when omitted, matching addMenuItem.
type Item struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	Type            string
	AmountAvailable int
}

// User is one seeded account. Seeded users receive the standard starting
// balance.
type User struct {
	ID        string
	Name      string
	YearLevel string
}

// Data is the merged content of one or more seed files.
type Data struct {
	Menu  []Item
	Users []User
}

// LoadFiles parses all seed files concurrently, then merges them preserving
// file order so catalog insertion order stays deterministic.
func LoadFiles(ctx context.Context, paths []string) (*Data, error) {
	results := make([]*Data, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := LoadFile(path)
			if err != nil {
				return errors.Wrapf(err, "load seed %s", path)
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Data{}
	for _, r := range results {
		merged.Menu = append(merged.Menu, r.Menu...)
		merged.Users = append(merged.Users, r.Users...)
	}
	return merged, nil
}

// LoadFile parses a single seed file. Files ending in .gz are decompressed.
func LoadFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	return Load(r)
}

// Load parses a seed document: {"menu": [...], "users": [...]}.
func Load(r io.Reader) (*Data, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	var out Data
	d := jx.DecodeBytes(buf)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "menu":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeItem(d)
				if err != nil {
					return errors.Wrapf(err, "menu item %d", len(out.Menu))
				}
				out.Menu = append(out.Menu, item)
				return nil
			})
		case "users":
			return d.Arr(func(d *jx.Decoder) error {
				u, err := decodeUser(d)
				if err != nil {
					return errors.Wrapf(err, "user %d", len(out.Users))
				}
				out.Users = append(out.Users, u)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "decode seed")
	}

	return &out, nil
}

func decodeItem(d *jx.Decoder) (Item, error) {
	item := Item{AmountAvailable: 1}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			item.ID, err = d.Str()
		case "name":
			item.Name, err = d.Str()
		case "description":
			item.Description, err = d.Str()
		case "type":
			item.Type, err = d.Str()
		case "price":
			var raw string
			if raw, err = d.Str(); err != nil {
				return err
			}
			if item.Price, err = decimal.NewFromString(raw); err != nil {
				return errors.Wrapf(err, "parse price %q", raw)
			}
			if item.Price.IsNegative() {
				return errors.Errorf("negative price %q", raw)
			}
		case "amountAvailable":
			if item.AmountAvailable, err = d.Int(); err != nil {
				return err
			}
			if item.AmountAvailable < 0 {
				return errors.Errorf("negative amountAvailable %d", item.AmountAvailable)
			}
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Item{}, err
	}
	if item.ID == "" {
		return Item{}, errors.New("missing id")
	}
	return item, nil
}

func decodeUser(d *jx.Decoder) (User, error) {
	var u User
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			u.ID, err = d.Str()
		case "name":
			u.Name, err = d.Str()
		case "yearLevel":
			u.YearLevel, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return User{}, err
	}
	if u.ID == "" || u.Name == "" || u.YearLevel == "" {
		return User{}, errors.Errorf("incomplete user %q", u.ID)
	}
	return u, nil
}

// Apply feeds the seed data through the regular catalog and store APIs.
// Duplicate menu ids are permitted, matching addMenuItem; a duplicate user id
// is a seed error.
func (data *Data) Apply(catalog *menu.Catalog, users *user.Store) error {
	for i := range data.Menu {
		s := &data.Menu[i]
		catalog.Add(&menu.Item{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			Type:            s.Type,
			AmountAvailable: s.AmountAvailable,
		})
	}
	for _, s := range data.Users {
		if _, err := users.Create(s.ID, s.Name, s.YearLevel); err != nil {
			return errors.Wrapf(err, "seed user %q", s.ID)
		}
	}
	return nil
}
