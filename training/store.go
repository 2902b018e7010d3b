package training

import (
	"github.com/jmoiron/sqlx"
	bettererrors "github.com/xtuc/better-errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trained_sets (
	id TEXT PRIMARY KEY,
	degrees REAL NOT NULL,
	torque REAL NOT NULL,
	force REAL NOT NULL,
	velocity REAL NOT NULL,
	comfort REAL NOT NULL,
	feasibility REAL NOT NULL,
	power_scale REAL NOT NULL,
	completion_time REAL NOT NULL,
	accuracy REAL NOT NULL,
	power_used REAL NOT NULL,
	seed INTEGER NOT NULL
);`

// Store persists trained sets between sweeps. Not on the hot path; the live
// solver only ever sees weights applied between queries.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens (and migrates) a sqlite-backed store; ":memory:" works for
// tests.
func OpenStore(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, bettererrors.
			New("could not open trained-set store").
			SetContext("path", path).
			With(bettererrors.NewFromErr(err))
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, bettererrors.
			New("could not migrate trained-set store").
			With(bettererrors.NewFromErr(err))
	}

	return &Store{db: db}, nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

func (store *Store) Save(set TrainedSet) error {
	_, err := store.db.NamedExec(`
		INSERT OR REPLACE INTO trained_sets
		(id, degrees, torque, force, velocity, comfort, feasibility, power_scale,
		 completion_time, accuracy, power_used, seed)
		VALUES
		(:id, :degrees, :torque, :force, :velocity, :comfort, :feasibility, :power_scale,
		 :completion_time, :accuracy, :power_used, :seed)`, set)
	if err != nil {
		return bettererrors.
			New("could not save trained set").
			SetContext("id", set.ID.String()).
			With(bettererrors.NewFromErr(err))
	}

	return nil
}

func (store *Store) SaveAll(sets []TrainedSet) error {
	for _, set := range sets {
		if err := store.Save(set); err != nil {
			return err
		}
	}
	return nil
}

func (store *Store) LoadAll() ([]TrainedSet, error) {
	sets := make([]TrainedSet, 0)
	if err := store.db.Select(&sets, `SELECT * FROM trained_sets`); err != nil {
		return nil, bettererrors.
			New("could not load trained sets").
			With(bettererrors.NewFromErr(err))
	}

	return sets, nil
}

// Top returns the n best stored sets by composite score.
func (store *Store) Top(n int) ([]TrainedSet, error) {
	sets, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(sets) == 0 {
		return nil, nil
	}

	scores := CompositeScores(sets)

	indices := make([]int, len(sets))
	for i := range indices {
		indices[i] = i
	}
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && scores[indices[j]] > scores[indices[j-1]]; j-- {
			indices[j], indices[j-1] = indices[j-1], indices[j]
		}
	}

	if n > len(sets) {
		n = len(sets)
	}

	top := make([]TrainedSet, 0, n)
	for _, index := range indices[:n] {
		top = append(top, sets[index])
	}

	return top, nil
}
