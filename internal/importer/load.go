package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/tally-dev/tally/internal/logger"
	"github.com/tally-dev/tally/internal/model"
)

// Source is one configured directory of statements sharing a format.
type Source struct {
	Format              string
	Dir                 string
	Extension           string
	Encoding            string // IANA name; empty means UTF-8
	Delimiter           rune
	Account             string
	AccountFromFilename bool
}

// Open opens path for reading, decoding from the named character set.
func Open(path, charset string) (io.ReadCloser, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	if enc == nil {
		return f, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{enc.NewDecoder().Reader(f), f}, nil
}

// lookupEncoding returns nil for UTF-8, which needs no decoding.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", charset)
	}
	return enc, nil
}

// Load parses every statement file of src. Zero-byte files are skipped.
// Files are parsed concurrently and each is fully read before it is returned;
// streams come back in file-name order.
func Load(ctx context.Context, reg *Registry, src Source) ([]model.Stream, error) {
	parser := reg.Get(src.Format)
	if parser == nil {
		return nil, fmt.Errorf("unknown statement format %q (known: %s)", src.Format, strings.Join(reg.Formats(), ", "))
	}
	if _, err := lookupEncoding(src.Encoding); err != nil {
		return nil, err
	}

	files, err := Scan(src.Dir, src.Extension)
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug().Str("dir", src.Dir).Str("format", parser.Format()).Int("files", len(files)).Msg("scanned statement dir")

	files = slices.DeleteFunc(files, func(f FileInfo) bool {
		if f.Size > 0 {
			return false
		}
		log.Debug().Str("file", f.Path).Msg("skipping empty statement file")
		return true
	})

	streams := make([]model.Stream, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opts := Options{Account: src.Account, Delimiter: src.Delimiter}
			if src.AccountFromFilename {
				opts.Account = AccountFromFilename(file.Name)
			}
			entries, err := parseFile(parser, file.Path, src.Encoding, opts)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", file.Path, err)
			}
			log.Debug().Str("file", file.Path).Int("entries", len(entries)).Msg("parsed statement")
			streams[i] = model.Stream{Source: file.Path, Order: parser.Order(), Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return streams, nil
}

func parseFile(p Parser, path, charset string, opts Options) ([]model.Entry, error) {
	rc, err := Open(path, charset)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	entries, err := p.Parse(rc, opts)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, malformed(0, "no %s entries found", p.Format())
	}
	return entries, nil
}
