package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/config"
)

// migrationResult summarizes the rewrite of one data file.
type migrationResult struct {
	Path    string
	Records int
	Changed int
	Skipped bool
}

// migrateDataFiles rewrites legacy records in place: localized priority
// labels become canonical identifiers, goals gain the progress and
// subtasks fields, mood values stored as digit strings become numbers.
// Records that cannot be interpreted are left untouched.
func migrateDataFiles(storage config.StorageConfig) ([]migrationResult, error) {
	steps := []struct {
		path    string
		rewrite func(map[string]interface{}) bool
	}{
		{storage.ChecklistPath(), migrateTaskRecord},
		{storage.GoalsPath(), migrateGoalRecord},
		{storage.MoodPath(), migrateMoodRecord},
	}

	var results []migrationResult
	for _, step := range steps {
		result, err := migrateFile(step.path, step.rewrite)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func migrateFile(path string, rewrite func(map[string]interface{}) bool) (migrationResult, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return migrationResult{Path: path, Skipped: true}, nil
	}
	if err != nil {
		return migrationResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return migrationResult{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	changed := 0
	for _, record := range records {
		if rewrite(record) {
			changed++
		}
	}

	if changed > 0 {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return migrationResult{}, fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return migrationResult{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return migrationResult{Path: path, Records: len(records), Changed: changed}, nil
}

func migrateTaskRecord(record map[string]interface{}) bool {
	changed := normalizePriority(record)

	// completed_at is meaningful only on completed records
	if completed, _ := record["completed"].(bool); !completed {
		if _, ok := record["completed_at"]; ok {
			delete(record, "completed_at")
			changed = true
		}
	}

	return changed
}

func migrateGoalRecord(record map[string]interface{}) bool {
	changed := migrateTaskRecord(record)

	if _, ok := record["progress"]; !ok {
		record["progress"] = 0
		changed = true
	}
	if _, ok := record["subtasks"]; !ok {
		record["subtasks"] = []interface{}{}
		changed = true
	}

	return changed
}

func migrateMoodRecord(record map[string]interface{}) bool {
	raw, ok := record["value"].(string)
	if !ok {
		return false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	record["value"] = value
	return true
}

func normalizePriority(record map[string]interface{}) bool {
	label, ok := record["priority"].(string)
	if !ok {
		return false
	}
	priority, ok := entities.ParsePriority(label)
	if !ok || string(priority) == label {
		return false
	}
	record["priority"] = string(priority)
	return true
}
