package game

import (
	"sort"

	"github.com/charmbracelet/log"
)

// DataManager caches one MapInfo per stage and tracks the active map.
// The cache is read-only once loading is done, so sessions created with
// Session may share it.
type DataManager struct {
	resourcePath string
	mapData      map[string]MapInfo
	active       ActiveMap
}

func NewDataManager(resourcePath string) *DataManager {
	return &DataManager{
		resourcePath: resourcePath,
		mapData:      make(map[string]MapInfo),
	}
}

// Load reads the map file of every named stage.
func (dm *DataManager) Load(stageNames ...string) error {
	for _, name := range stageNames {
		info, err := ReadMapFile(dm.resourcePath, name)
		if err != nil {
			return err
		}
		dm.mapData[name] = info
		log.Debug("Map loaded", "stage", name, "width", info.MaxX, "height", info.MaxY,
			"walls", len(info.WallPositions), "feeds", info.NeedFeedCount)
	}
	return nil
}

// LoadScenes loads the maps of every registered stage scene.
func (dm *DataManager) LoadScenes(sm *SceneManager) error {
	names := []string{}
	for _, scene := range sm.Scenes() {
		if scene.Kind == SceneStage {
			names = append(names, scene.MapName)
		}
	}
	return dm.Load(names...)
}

// Lookup returns the cached map without touching the active map.
func (dm *DataManager) Lookup(mapName string) (MapInfo, error) {
	info, ok := dm.mapData[mapName]
	if !ok {
		return MapInfo{}, &MapError{Name: mapName, Err: ErrMapNotFound}
	}
	return info, nil
}

// Activate makes info the active map and resets the feed counter.
func (dm *DataManager) Activate(info MapInfo) {
	dm.active = ActiveMap{
		MinX:          info.MinX,
		MinY:          info.MinY,
		MaxX:          info.MaxX,
		MaxY:          info.MaxY,
		NeedFeedCount: info.NeedFeedCount,
	}
}

// GetMapData is Lookup followed by Activate: every successful call changes
// the active bounds and zeroes the feed count.
func (dm *DataManager) GetMapData(mapName string) (MapInfo, error) {
	info, err := dm.Lookup(mapName)
	if err != nil {
		return MapInfo{}, err
	}
	dm.Activate(info)
	return info, nil
}

func (dm *DataManager) Active() ActiveMap {
	return dm.active
}

// AddFeed counts one eaten feed and reports whether the stage is cleared.
func (dm *DataManager) AddFeed() (int, bool) {
	dm.active.CurrentFeedCount++
	return dm.active.CurrentFeedCount, dm.active.Cleared()
}

// Session returns a manager sharing this cache with a fresh active map.
func (dm *DataManager) Session() *DataManager {
	return &DataManager{
		resourcePath: dm.resourcePath,
		mapData:      dm.mapData,
	}
}

func (dm *DataManager) StageNames() []string {
	names := make([]string, 0, len(dm.mapData))
	for name := range dm.mapData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
