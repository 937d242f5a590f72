package game

// Sound cue names understood by SoundPlayer implementations.
const (
	StageBackgroundMusic  = "StageBackgroundMusic"
	EndingBackgroundMusic = "EndingBackgroundMusic"
	ClearBackgroundMusic  = "ClearBackgroundMusic"
	EatFeedSound          = "EatFeed"
	DeadSound             = "Dead"
	StageClearSound       = "StageClear"
)

// SoundPlayer plays named cues. Play must not block the frame.
type SoundPlayer interface {
	Play(name string)
}

type NopSound struct{}

func (NopSound) Play(string) {}
