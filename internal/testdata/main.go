package testdata

import (
	"encoding/json"

	"git.lost.host/meutraa/hoshi/internal/game"
)

// Times are nanoseconds, Shape 1 is a heart and Color 1 is red
const data = `[
	{"ID": "00000000-0000-4000-8000-000000000001", "Lane": 0, "Time": 3000000000, "Kind": {"Shape": 0, "Color": 0}},
	{"ID": "00000000-0000-4000-8000-000000000002", "Lane": 1, "Time": 3000000000, "Kind": {"Shape": 1, "Color": 1}},
	{"ID": "00000000-0000-4000-8000-000000000003", "Lane": 2, "Time": 3500000000, "Kind": {"Shape": 0, "Color": 0}},
	{"ID": "00000000-0000-4000-8000-000000000004", "Lane": 0, "Time": 4000000000, "Kind": {"Shape": 1, "Color": 3}},
	{"ID": "00000000-0000-4000-8000-000000000005", "Lane": 3, "Time": 5000000000, "Kind": {"Shape": 0, "Color": 0}},
	{"ID": "00000000-0000-4000-8000-000000000006", "Lane": 3, "Time": 5100000000, "Kind": {"Shape": 0, "Color": 0}}
]`

func GetNotes() ([]*game.Note, error) {
	var notes []*game.Note
	if err := json.Unmarshal([]byte(data), &notes); nil != err {
		return nil, err
	}
	return notes, nil
}

func GetChart() (*game.Chart, error) {
	notes, err := GetNotes()
	if nil != err {
		return nil, err
	}
	return game.NewChart(notes), nil
}
