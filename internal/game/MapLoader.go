package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	playerCell = 'P'
	wallCell   = 'B'

	maxMapLineBytes = 1 << 20
)

// MapFilePath returns <resourcePath>/MapData/<name>.txt.
func MapFilePath(resourcePath, name string) string {
	return filepath.Join(resourcePath, MapDataDir, name+MapFileExtension)
}

// ReadMapFile loads and parses the map file of a stage.
func ReadMapFile(resourcePath, name string) (MapInfo, error) {
	file, err := os.Open(MapFilePath(resourcePath, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MapInfo{}, &MapError{Name: name, Err: ErrResourceNotFound}
		}
		return MapInfo{}, &MapError{Name: name, Err: err}
	}
	defer file.Close()

	info, err := ParseMap(file)
	if err != nil {
		return MapInfo{}, &MapError{Name: name, Err: err}
	}
	return info, nil
}

// ParseMap reads the two header lines and the character grid.
func ParseMap(r io.Reader) (MapInfo, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxMapLineBytes)
	info := MapInfo{}

	var err error
	if info.NeedFeedCount, err = readHeaderValue(scanner); err != nil {
		return MapInfo{}, err
	}
	if info.SpawnInterval, err = readHeaderValue(scanner); err != nil {
		return MapInfo{}, err
	}

	rows := []string{}
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return MapInfo{}, fmt.Errorf("%w: %v", ErrMalformedGrid, err)
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return MapInfo{}, ErrEmptyMap
	}

	foundPlayer := false
	walls := []Vector2{}
	currentX, currentY := 0, 0
	for _, line := range rows {
		for currentX = 0; currentX < len(line); currentX++ {
			switch line[currentX] {
			case playerCell:
				info.PlayerPosition = Vector2{X: AnchorLeft + currentX, Y: AnchorTop + currentY}
				foundPlayer = true
			case wallCell:
				walls = append(walls, Vector2{X: AnchorLeft + currentX, Y: AnchorTop + currentY})
			}
		}
		currentY++
	}
	if !foundPlayer {
		return MapInfo{}, ErrNoPlayerSpawn
	}

	info.MaxX = currentX
	info.MaxY = currentY
	info.WallPositions = walls
	info.SpawnableTable = make([][]bool, currentY)
	for row := range info.SpawnableTable {
		info.SpawnableTable[row] = make([]bool, currentX)
		for col := range info.SpawnableTable[row] {
			info.SpawnableTable[row][col] = true
		}
	}

	// Rows longer than the last one can hold walls outside the table.
	for _, wall := range walls {
		local := wall.Local()
		if local.Y < currentY && local.X < currentX {
			info.SpawnableTable[local.Y][local.X] = false
		}
	}

	return info, nil
}

func readHeaderValue(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		return 0, fmt.Errorf("%w: missing header line", ErrMalformedHeader)
	}

	line := scanner.Text()
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedHeader, line, err)
	}
	return value, nil
}
