// Package bronze stores raw feed payloads as parquet, one file per
// source JSON. Files are write-once so reruns never mutate history.
package bronze

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	parquet "github.com/parquet-go/parquet-go"
)

// Row types keep the source record verbatim in Payload next to the
// identity columns the silver stage partitions by. Normalization
// happens later, reading Payload back.

type CompetitionRow struct {
	CompetitionID int64  `parquet:"competition_id"`
	SeasonID      int64  `parquet:"season_id"`
	Payload       string `parquet:"payload"`
}

type MatchRow struct {
	CompetitionID int64  `parquet:"competition_id"`
	SeasonID      int64  `parquet:"season_id"`
	MatchID       int64  `parquet:"match_id"`
	Payload       string `parquet:"payload"`
}

type EventRow struct {
	MatchID int64  `parquet:"match_id"`
	EventID string `parquet:"event_id"`
	Index   int64  `parquet:"index"`
	Payload string `parquet:"payload"`
}

type LineupRow struct {
	MatchID int64  `parquet:"match_id"`
	TeamID  int64  `parquet:"team_id"`
	Payload string `parquet:"payload"`
}

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) competitionsPath() string {
	return filepath.Join(s.root, "competitions", "competitions.parquet")
}

func (s *Store) matchesPath(competitionID, seasonID int64) string {
	return filepath.Join(s.root, "matches", fmt.Sprintf("%d_%d.parquet", competitionID, seasonID))
}

func (s *Store) eventsPath(matchID int64) string {
	return filepath.Join(s.root, "events", fmt.Sprintf("%d.parquet", matchID))
}

func (s *Store) lineupsPath(matchID int64) string {
	return filepath.Join(s.root, "lineups", fmt.Sprintf("%d.parquet", matchID))
}

// WriteCompetitions persists the competitions index. The returned bool
// reports whether a file was written; an existing file is skipped
// unless force is set.
func (s *Store) WriteCompetitions(rows []CompetitionRow, force bool) (bool, error) {
	return writeRows(s.competitionsPath(), rows, force)
}

func (s *Store) ReadCompetitions() ([]CompetitionRow, error) {
	return readRows[CompetitionRow](s.competitionsPath())
}

func (s *Store) WriteMatches(competitionID, seasonID int64, rows []MatchRow, force bool) (bool, error) {
	return writeRows(s.matchesPath(competitionID, seasonID), rows, force)
}

func (s *Store) ReadMatches(competitionID, seasonID int64) ([]MatchRow, error) {
	return readRows[MatchRow](s.matchesPath(competitionID, seasonID))
}

func (s *Store) WriteEvents(matchID int64, rows []EventRow, force bool) (bool, error) {
	return writeRows(s.eventsPath(matchID), rows, force)
}

func (s *Store) ReadEvents(matchID int64) ([]EventRow, error) {
	return readRows[EventRow](s.eventsPath(matchID))
}

func (s *Store) WriteLineups(matchID int64, rows []LineupRow, force bool) (bool, error) {
	return writeRows(s.lineupsPath(matchID), rows, force)
}

func (s *Store) ReadLineups(matchID int64) ([]LineupRow, error) {
	return readRows[LineupRow](s.lineupsPath(matchID))
}

func (s *Store) HasEvents(matchID int64) bool {
	_, err := os.Stat(s.eventsPath(matchID))
	return err == nil
}

func (s *Store) HasLineups(matchID int64) bool {
	_, err := os.Stat(s.lineupsPath(matchID))
	return err == nil
}

// ListEventMatchIDs returns the match ids with an events file, taken
// from the file names.
func (s *Store) ListEventMatchIDs() ([]int64, error) {
	pattern := filepath.Join(s.root, "events", "*.parquet")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "glob bronze events")
	}

	ids := make([]int64, 0, len(paths))
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), ".parquet")
		id, err := strconv.ParseInt(stem, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writeRows[T any](path string, rows []T, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrap(err, "create bronze directory")
	}

	// Write to a sibling temp file and rename so readers never see a
	// partial parquet file.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return false, errors.Wrap(err, "create bronze file")
	}

	var t T
	w := parquet.NewWriter(f, parquet.SchemaOf(&t), parquet.Compression(&parquet.Snappy))
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = w.Close()
			_ = f.Close()
			_ = os.Remove(tmp)
			return false, errors.Wrap(err, "write bronze row")
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return false, errors.Wrap(err, "close bronze writer")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return false, errors.Wrap(err, "close bronze file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, errors.Wrap(err, "publish bronze file")
	}
	return true, nil
}

func readRows[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, errors.Wrapf(err, "read bronze file %s", path)
	}
	return rows, nil
}
