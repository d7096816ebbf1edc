// Package archive persists played games and per-player results in BadgerDB.
package archive

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-bot/match"
)

// Key layout. Game ids are big-endian so that iteration yields them in
// order.
const (
	prefixGame  = "game/"
	prefixStats = "stats/"
	keyGameSeq  = "seq/game"
)

var ErrNotFound = errors.New("archive: not found")

// Stats is the running record of one player.
type Stats struct {
	Name       string    `json:"name"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	Draws      int       `json:"draws"`
	AsWhite    int       `json:"as_white"`
	Plies      int       `json:"plies"`
	LastPlayed time.Time `json:"last_played"`
}

// Score returns the points per game, a draw counting half.
func (s Stats) Score() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.Wins) + float64(s.Draws)/2) / float64(s.Games)
}

// Store wraps a Badger database.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence

	// Serializes the stats read-modify-write so concurrent saves do not
	// conflict.
	mu sync.Mutex
}

// Open opens or creates the store in dir. An empty dir keeps everything in
// memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", dir, err)
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: game sequence: %w", err)
	}
	return &Store{db: db, seq: seq}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.seq.Release()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	s.db = nil
	return err
}

func gameKey(id uint64) []byte {
	key := make([]byte, len(prefixGame)+8)
	copy(key, prefixGame)
	binary.BigEndian.PutUint64(key[len(prefixGame):], id)
	return key
}

func statsKey(name string) []byte { return []byte(prefixStats + name) }

// SaveGame stores g under a fresh id and, when the game is finished, folds
// its result into both players' stats in the same transaction.
func (s *Store) SaveGame(g *match.Game) (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("archive: save game: %w", err)
	}
	id := n + 1 // ids start at 1

	data, err := json.Marshal(g)
	if err != nil {
		return 0, fmt.Errorf("archive: save game: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(gameKey(id), data); err != nil {
			return err
		}
		if g.Result == match.Unfinished {
			return nil
		}
		for _, white := range []bool{true, false} {
			name := g.Black
			if white {
				name = g.White
			}
			st, err := getStats(txn, name)
			if err != nil {
				return err
			}
			record(&st, g, white)
			if err := putStats(txn, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("archive: save game: %w", err)
	}
	return id, nil
}

func record(st *Stats, g *match.Game, white bool) {
	st.Games++
	st.Plies += len(g.Moves)
	if white {
		st.AsWhite++
	}
	switch {
	case g.Result == match.Draw:
		st.Draws++
	case (g.Result == match.WhiteWins) == white:
		st.Wins++
	default:
		st.Losses++
	}
	if g.Finished.After(st.LastPlayed) {
		st.LastPlayed = g.Finished
	}
}

func getStats(txn *badger.Txn, name string) (Stats, error) {
	st := Stats{Name: name}
	item, err := txn.Get(statsKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &st)
	})
	return st, err
}

func putStats(txn *badger.Txn, st Stats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return txn.Set(statsKey(st.Name), data)
}

// Game loads the game stored under id.
func (s *Store) Game(id uint64) (*match.Game, error) {
	var g match.Game
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: game %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("archive: load game %d: %w", id, err)
	}
	return &g, nil
}

// GameIDs lists the stored game ids in ascending order.
func (s *Store) GameIDs() ([]uint64, error) {
	var ids []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			ids = append(ids, binary.BigEndian.Uint64(key[len(prefixGame):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive: list games: %w", err)
	}
	return ids, nil
}

// Stats returns the record of one player; unknown players have zero stats.
func (s *Store) Stats(name string) (Stats, error) {
	var st Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		st, err = getStats(txn, name)
		return err
	})
	if err != nil {
		return st, fmt.Errorf("archive: stats %s: %w", name, err)
	}
	return st, nil
}

// AllStats returns every player's record sorted by name.
func (s *Store) AllStats() ([]Stats, error) {
	byName := map[string]Stats{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixStats)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var st Stats
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &st)
			}); err != nil {
				return err
			}
			byName[st.Name] = st
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive: all stats: %w", err)
	}

	names := maps.Keys(byName)
	slices.Sort(names)
	out := make([]Stats, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out, nil
}
