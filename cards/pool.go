package cards

import (
	"os"

	json "github.com/goccy/go-json"
	bettererrors "github.com/xtuc/better-errors"
)

// MarshalPool serializes a card pool. Connections travel as the name lists
// already on the cards; live references are not serialized (they would cycle).
func MarshalPool(pool []*GoodSection) ([]byte, error) {
	data, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return nil, bettererrors.New("could not marshal card pool").With(bettererrors.NewFromErr(err))
	}

	return data, nil
}

// UnmarshalPool deserializes a card pool and rebuilds every card's live
// connection references against the loaded pool.
func UnmarshalPool(data []byte) ([]*GoodSection, error) {
	var pool []*GoodSection
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, bettererrors.New("could not unmarshal card pool").With(bettererrors.NewFromErr(err))
	}

	for _, card := range pool {
		card.RebuildConnections(pool)
	}

	return pool, nil
}

func SavePoolFile(path string, pool []*GoodSection) error {
	data, err := MarshalPool(pool)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return bettererrors.
			New("could not write card pool file").
			SetContext("path", path).
			With(bettererrors.NewFromErr(err))
	}

	return nil
}

func LoadPoolFile(path string) ([]*GoodSection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bettererrors.
			New("could not read card pool file").
			SetContext("path", path).
			With(bettererrors.NewFromErr(err))
	}

	return UnmarshalPool(data)
}
