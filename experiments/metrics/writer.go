package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// AgentConfig describes one player in an experiment.
type AgentConfig struct {
	ID        int    `yaml:"id"`
	MaxDepth  int    `yaml:"max_depth"`
	Evaluator string `yaml:"evaluator"` // Name passed to game.Evaluator
	Pruning   bool   `yaml:"pruning"`
	Random    bool   `yaml:"random"` // Plays uniformly random moves, other fields ignored
}

type GameRecord struct {
	ID    int
	Black int // AgentConfig.ID
	White int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates <outputDir>/<name>/<timestamp> and writes every file there.
func NewWriter(outputDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(outputDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.MaxDepth),
			config.Evaluator,
			strconv.FormatBool(config.Pruning),
			strconv.FormatBool(config.Random),
		})
	}
	header := []string{"id", "max_depth", "evaluator", "pruning", "random"}
	if err := w.writeCSV("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Black),
			strconv.Itoa(record.White),
			record.StartingPlayer.String(),
			record.Winner.String(),
			strconv.Itoa(record.Discs[0]),
			strconv.Itoa(record.Discs[1]),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Passes),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "black", "white", "starting_player", "winner", "black_discs", "white_discs",
		"moves", "passes", "start_time", "end_time", "duration"}
	if err := w.writeCSV("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Move.String(),
			strconv.Itoa(record.MaxDepth),
			strconv.FormatBool(record.Pruning),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Utility),
		})
	}
	header := []string{"game", "step", "player", "move", "max_depth", "pruning", "duration",
		"nodes", "leaves", "cutoffs", "utility"}
	if err := w.writeCSV("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	return nil
}

// WriteSummary stores any yaml-serializable value as summary.yaml.
func (w *Writer) WriteSummary(summary any) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.baseDir, "summary.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
