package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/daybot/core/internal/infrastructure/config"
)

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func readRecords(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	return records
}

func TestMigrateDataFiles(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	storage := config.StorageConfig{
		DataDir:       dir,
		ChecklistFile: "checklist.json",
		GoalsFile:     "goals.json",
		ScheduleFile:  "schedule.json",
		MoodFile:      "mood.json",
	}

	writeJSON(t, storage.ChecklistPath(), []map[string]interface{}{
		{"text": "Buy milk", "priority": "высокий", "completed": false, "completed_at": "2024-01-01 10:00:00", "created_at": "2024-01-01 09:00:00"},
		{"text": "Call mom", "priority": "low", "completed": true, "completed_at": "2024-01-02 10:00:00", "created_at": "2024-01-01 09:00:00"},
	})
	writeJSON(t, storage.GoalsPath(), []map[string]interface{}{
		{"text": "Learn Go", "priority": "средний", "completed": false, "created_at": "2024-01-01 09:00:00"},
	})
	writeJSON(t, storage.MoodPath(), []map[string]interface{}{
		{"value": "4", "timestamp": "2024-01-01T09:00:00Z"},
		{"value": 3, "timestamp": "2024-01-02T09:00:00Z"},
	})

	results, err := migrateDataFiles(storage)
	is.NoErr(err)
	is.Equal(len(results), 3)

	tasks := readRecords(t, storage.ChecklistPath())
	is.Equal(tasks[0]["priority"], "high")
	_, hasStamp := tasks[0]["completed_at"]
	is.True(!hasStamp) // incomplete record loses its completion stamp
	is.Equal(tasks[1]["priority"], "low")
	is.Equal(tasks[1]["completed_at"], "2024-01-02 10:00:00")

	goals := readRecords(t, storage.GoalsPath())
	is.Equal(goals[0]["priority"], "medium")
	is.Equal(goals[0]["progress"], float64(0))
	subtasks, ok := goals[0]["subtasks"].([]interface{})
	is.True(ok)
	is.Equal(len(subtasks), 0)

	moods := readRecords(t, storage.MoodPath())
	is.Equal(moods[0]["value"], float64(4))
	is.Equal(moods[1]["value"], float64(3))
}

func TestMigrateSkipsMissingFiles(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	storage := config.StorageConfig{
		DataDir:       dir,
		ChecklistFile: "checklist.json",
		GoalsFile:     "goals.json",
		ScheduleFile:  "schedule.json",
		MoodFile:      "mood.json",
	}

	results, err := migrateDataFiles(storage)
	is.NoErr(err)
	for _, r := range results {
		is.True(r.Skipped)
	}
}

func TestMigrateLeavesCleanFilesAlone(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "checklist.json")

	writeJSON(t, path, []map[string]interface{}{
		{"text": "Buy milk", "priority": "high", "completed": true, "completed_at": "2024-01-02 10:00:00", "created_at": "2024-01-01 09:00:00"},
	})
	before, err := os.ReadFile(path)
	is.NoErr(err)

	result, err := migrateFile(path, migrateTaskRecord)
	is.NoErr(err)
	is.Equal(result.Changed, 0)

	after, err := os.ReadFile(path)
	is.NoErr(err)
	is.Equal(string(before), string(after))
}
