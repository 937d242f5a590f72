package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

// ScoreRecorder stores finished runs. HighScoreService is the sqlite one.
type ScoreRecorder interface {
	SaveRun(run RunResult) error
	GetHighScores(limit, offset int) ([]Score, error)
	GetTotalScoreCount() (int, error)
}

type HighScoreService struct {
	db *sql.DB
}

const tableName = "runs"

// RunResult is what a run ended with.
type RunResult struct {
	PlayerName string
	Stage      string
	Feeds      int
	Cleared    bool
}

type Score struct {
	ID         int
	PlayerName string
	Stage      string
	Feeds      int
	Cleared    bool
	CreatedAt  time.Time
}

func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	return service, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}

// createTable creates the runs table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		stage TEXT NOT NULL,
		feeds INTEGER NOT NULL,
		cleared INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Runs table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveRun(run RunResult) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, stage, feeds, cleared)
	VALUES (?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, run.PlayerName, run.Stage, run.Feeds, run.Cleared)
	if err != nil {
		return fmt.Errorf("failed to insert run for %s: %w", run.PlayerName, err)
	}

	return nil
}

// GetHighScores returns runs ordered by clears first, then feeds eaten.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, stage, feeds, cleared, created_at
	FROM ` + tableName + `
	ORDER BY cleared DESC, feeds DESC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score

	for rows.Next() {
		var score Score
		var createdAt string
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Stage, &score.Feeds, &score.Cleared, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			score.CreatedAt = parsed
		} else if parsed, err := time.Parse(time.DateTime, createdAt); err == nil {
			score.CreatedAt = parsed
		} else {
			log.Warn("Time parsing error for run", "id", score.ID, "raw", createdAt, "error", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}
