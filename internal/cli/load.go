package cli

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/planning"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:embed exercises.yaml
var defaultCatalog []byte

var allDifficulties = []domain.Difficulty{
	domain.DifficultyBeginner,
	domain.DifficultyIntermediate,
	domain.DifficultyAdvanced,
}

// loadProfile reads a UserProfile from a YAML or JSON file. Keys follow the
// API's JSON field names; dates may be YYYY-MM-DD.
func loadProfile(path string) (*domain.UserProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var profile domain.UserProfile
	if err := decodeSettings(v.AllSettings(), &profile); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	for i := range profile.Goals {
		if profile.Goals[i].Status == "" {
			profile.Goals[i].Status = domain.GoalActive
		}
	}
	if profile.UserID.IsZero() {
		profile.UserID = primitive.NewObjectID()
	}
	return &profile, nil
}

// loadCatalog reads the exercise list from path, or the built-in catalog when
// path is empty. Every exercise gets a fresh ID.
func loadCatalog(path string) (planning.ExercisePool, error) {
	v := viper.New()
	if path == "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
			return nil, fmt.Errorf("read built-in catalog: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	var file struct {
		Exercises []domain.Exercise `json:"exercises"`
	}
	if err := decodeSettings(v.AllSettings(), &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(file.Exercises) == 0 {
		return nil, fmt.Errorf("catalog has no exercises")
	}

	var pool planning.ExercisePool
	for _, ex := range file.Exercises {
		tiers := []domain.Difficulty{ex.Difficulty}
		if ex.Difficulty == "" {
			tiers = allDifficulties
		}
		for _, d := range tiers {
			e := ex
			e.ID = primitive.NewObjectID()
			e.Difficulty = d
			pool = append(pool, e)
		}
	}
	return pool, nil
}

// decodeSettings converts viper's settings map into out through the JSON
// tags of the domain types. Viper lowercases keys; encoding/json matches
// field names case-insensitively, so the tags still apply.
func decodeSettings(settings map[string]any, out any) error {
	raw, err := json.Marshal(normalizeDates(settings))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// normalizeDates rewrites YYYY-MM-DD strings and parsed YAML timestamps as
// RFC 3339 so they decode into time.Time.
func normalizeDates(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeDates(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeDates(item)
		}
		return val
	case string:
		if t, err := time.Parse(time.DateOnly, val); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
