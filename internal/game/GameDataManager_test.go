package game

import (
	"errors"
	"reflect"
	"testing"
)

const wideMap = "Feed 7\nInterval 250\nBBBBBB\nBP...B\nB....B\nBBBBBB\n"

func newLoadedDataManager(t *testing.T) *DataManager {
	t.Helper()
	dir := t.TempDir()
	writeMap(t, dir, "Stage1", boxedMap)
	writeMap(t, dir, "Stage2", wideMap)

	dm := NewDataManager(dir)
	if err := dm.Load("Stage1", "Stage2"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return dm
}

func TestDataManagerLookupIsPure(t *testing.T) {
	dm := newLoadedDataManager(t)

	info, err := dm.Lookup("Stage2")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.NeedFeedCount != 7 || info.MaxX != 6 || info.MaxY != 4 {
		t.Errorf("Stage2 = need %d, %dx%d, want need 7, 6x4", info.NeedFeedCount, info.MaxX, info.MaxY)
	}
	if dm.Active() != (ActiveMap{}) {
		t.Errorf("Lookup changed the active map: %+v", dm.Active())
	}
}

func TestDataManagerGetMapDataActivates(t *testing.T) {
	dm := newLoadedDataManager(t)

	if _, err := dm.GetMapData("Stage1"); err != nil {
		t.Fatalf("GetMapData(Stage1): %v", err)
	}
	dm.AddFeed()
	dm.AddFeed()
	if got := dm.Active().CurrentFeedCount; got != 2 {
		t.Fatalf("CurrentFeedCount = %d, want 2", got)
	}

	b, err := dm.GetMapData("Stage2")
	if err != nil {
		t.Fatalf("GetMapData(Stage2): %v", err)
	}

	want := ActiveMap{MinX: 0, MinY: 0, MaxX: b.MaxX, MaxY: b.MaxY, NeedFeedCount: 7, CurrentFeedCount: 0}
	if got := dm.Active(); got != want {
		t.Errorf("active map = %+v, want %+v", got, want)
	}
	if got := dm.Active().MapMaxX(); got != AnchorLeft+6 {
		t.Errorf("MapMaxX = %d, want %d", got, AnchorLeft+6)
	}
	if got := dm.Active().Height(); got != 4 {
		t.Errorf("Height = %d, want 4", got)
	}
}

func TestDataManagerAddFeedClears(t *testing.T) {
	dm := newLoadedDataManager(t)
	if _, err := dm.GetMapData("Stage1"); err != nil {
		t.Fatalf("GetMapData: %v", err)
	}

	for i := 1; i <= 3; i++ {
		count, cleared := dm.AddFeed()
		if count != i || cleared != (i == 3) {
			t.Errorf("AddFeed #%d = (%d, %v)", i, count, cleared)
		}
	}
}

func TestDataManagerUnknownMap(t *testing.T) {
	dm := newLoadedDataManager(t)
	dm.GetMapData("Stage1")
	before := dm.Active()

	_, err := dm.GetMapData("Stage3")
	if !errors.Is(err, ErrMapNotFound) {
		t.Fatalf("GetMapData(Stage3) error = %v, want ErrMapNotFound", err)
	}
	if dm.Active() != before {
		t.Error("failed lookup changed the active map")
	}
}

func TestDataManagerLoadFailsOnBadMap(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "Stage1", boxedMap)
	writeMap(t, dir, "Broken", "Feed x\nInterval 1\nP\n")

	dm := NewDataManager(dir)
	if err := dm.Load("Stage1", "Broken"); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Load error = %v, want ErrMalformedHeader", err)
	}
	if err := dm.Load("Missing"); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("Load error = %v, want ErrResourceNotFound", err)
	}
}

func TestDataManagerLoadScenesOnlyStages(t *testing.T) {
	dir := t.TempDir()
	writeMap(t, dir, "Stage1", boxedMap)

	scenes, err := DefaultScenes([]string{"Stage1"})
	if err != nil {
		t.Fatalf("DefaultScenes: %v", err)
	}
	dm := NewDataManager(dir)
	if err := dm.LoadScenes(scenes); err != nil {
		t.Fatalf("LoadScenes: %v", err)
	}
	if got := dm.StageNames(); !reflect.DeepEqual(got, []string{"Stage1"}) {
		t.Errorf("StageNames = %v, want [Stage1]", got)
	}
}

func TestDataManagerSessionsShareCacheNotState(t *testing.T) {
	dm := newLoadedDataManager(t)
	a := dm.Session()
	b := dm.Session()

	if _, err := a.GetMapData("Stage2"); err != nil {
		t.Fatalf("session GetMapData: %v", err)
	}
	a.AddFeed()

	if b.Active() != (ActiveMap{}) {
		t.Errorf("session b sees session a's active map: %+v", b.Active())
	}
	if dm.Active() != (ActiveMap{}) {
		t.Errorf("parent sees session a's active map: %+v", dm.Active())
	}
	if !reflect.DeepEqual(a.StageNames(), []string{"Stage1", "Stage2"}) {
		t.Errorf("session StageNames = %v", a.StageNames())
	}
}
