// internal/words/words.go
//
// Topic and word catalogs for the game.
//
// Responsibilities:
//   - Define the Catalog contract consumed by the console and HTTP layers.
//   - Pick a pseudo-random word for a topic.
//   - Build the configured catalog (Open): SQLite, a file, or embedded defaults.
//
// Initialization behavior (Open):
//  1. If Options.DSN is set, open the SQLite catalog; when it has no topics
//     yet it is seeded from Options.File or the embedded defaults.
//  2. Else if Options.File is set, load that CSV or YAML file into memory.
//  3. Else fall back to the embedded `temas_palabras.csv`.

package words

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/robalobadob/ahorcado/assets"
)

var (
	// ErrTopicNotFound is returned for a topic the catalog does not know.
	ErrTopicNotFound = errors.New("words: topic not found")
	// ErrEmptyTopic is returned when a known topic has no words.
	ErrEmptyTopic = errors.New("words: topic has no words")
	// ErrInvalidEntry is returned when adding a blank topic or word.
	ErrInvalidEntry = errors.New("words: topic and word are required")
)

// Catalog supplies topics and words.
type Catalog interface {
	// Topics lists topic names in display order.
	Topics(ctx context.Context) ([]string, error)
	// Words lists the words of a topic, or ErrTopicNotFound.
	Words(ctx context.Context, topic string) ([]string, error)
	// AddWord stores a word under a topic, creating the topic if needed.
	AddWord(ctx context.Context, topic, word string) error
}

// Options selects the catalog backend.
type Options struct {
	File string // CSV or YAML topic/word file
	DSN  string // SQLite database path
}

// Open builds the catalog described by opts.
func Open(ctx context.Context, opts Options) (Catalog, error) {
	switch {
	case opts.DSN != "":
		db, err := OpenSQL(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := seedIfEmpty(ctx, db, opts.File); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Debug().Str("dsn", opts.DSN).Msg("sqlite word catalog ready")
		return db, nil

	case opts.File != "":
		return LoadFile(opts.File)

	default:
		return Default()
	}
}

// Default loads the embedded catalog.
func Default() (*Memory, error) {
	f, err := assets.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// Close releases the resources held by c, if any.
func Close(c Catalog) error {
	if cl, ok := c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// seedIfEmpty copies the file (or embedded) catalog into db when db has no
// topics yet.
func seedIfEmpty(ctx context.Context, db *SQL, file string) error {
	topics, err := db.Topics(ctx)
	if err != nil {
		return err
	}
	if len(topics) > 0 {
		return nil
	}
	seed, err := fileOrDefault(file)
	if err != nil {
		return err
	}
	if err := Copy(ctx, db, seed); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info().Int("topics", len(seed.order)).Msg("seeded word catalog")
	return nil
}

func fileOrDefault(path string) (*Memory, error) {
	if path != "" {
		return LoadFile(path)
	}
	return Default()
}

// PickWord returns a random word of topic.
func PickWord(ctx context.Context, c Catalog, topic string) (string, error) {
	list, err := c.Words(ctx, topic)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyTopic, topic)
	}
	return list[frand.Intn(len(list))], nil
}

// Copy adds every topic and word of src to dst, preserving topic order.
func Copy(ctx context.Context, dst, src Catalog) error {
	topics, err := src.Topics(ctx)
	if err != nil {
		return err
	}
	for _, t := range topics {
		list, err := src.Words(ctx, t)
		if err != nil {
			return err
		}
		for _, w := range list {
			if err := dst.AddWord(ctx, t, w); err != nil {
				return fmt.Errorf("add %s/%s: %w", t, w, err)
			}
		}
	}
	return nil
}
