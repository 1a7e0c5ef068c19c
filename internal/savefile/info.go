package savefile

import (
	"context"
	"encoding/json"
	"strconv"

	"castedit/internal/backend"
	"castedit/internal/calendar"
	"castedit/internal/person"
)

// Info summarizes a loaded save.
type Info struct {
	CurrentDate string         `json:"currentDate"`
	StudioName  string         `json:"studioName"`
	Counts      map[string]int `json:"counts"`
	Movies      int            `json:"movies"`
	Budget      int64          `json:"budget"`
	Cash        int64          `json:"cash"`
	Reputation  float64        `json:"reputation"`
	Influence   int64          `json:"influence"`
}

const defaultStudioName = "Player Studio"

// CurrentDate returns the in-game date as long-form text.
func (f *File) CurrentDate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.root == nil {
		return "", backend.ErrNoSaveLoaded
	}
	return f.currentDateLocked().Long(), nil
}

func (f *File) currentDateLocked() calendar.Date {
	var timePassed string
	_ = json.Unmarshal(f.state["timePassed"], &timePassed)
	return calendar.CurrentDate(timePassed)
}

// Info reports headline numbers and per-category head counts.
func (f *File) Info(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.root == nil {
		return Info{}, backend.ErrNoSaveLoaded
	}

	info := Info{
		CurrentDate: f.currentDateLocked().Long(),
		StudioName:  defaultStudioName,
		Counts:      make(map[string]int, len(person.Categories)),
	}
	var name string
	if json.Unmarshal(f.state["studioName"], &name) == nil && name != "" {
		info.StudioName = name
	}
	var movies []json.RawMessage
	if json.Unmarshal(f.state["movies"], &movies) == nil {
		info.Movies = len(movies)
	}
	_ = json.Unmarshal(f.state["budget"], &info.Budget)
	_ = json.Unmarshal(f.state["cash"], &info.Cash)
	_ = json.Unmarshal(f.state["influence"], &info.Influence)
	info.Reputation = looseFloat(f.state["reputation"])

	for _, ch := range f.characters {
		if ch.obj == nil {
			continue
		}
		for _, category := range person.Categories {
			if _, ok := professionIn(ch.obj, category); ok {
				info.Counts[category]++
			}
		}
	}
	return info, nil
}

// looseFloat accepts a JSON number or a numeric string.
func looseFloat(data json.RawMessage) float64 {
	var n float64
	if json.Unmarshal(data, &n) == nil {
		return n
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return 0
}
