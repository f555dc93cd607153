package game

// Input is a snapshot of one player's control state for a tick. The scheduler
// keeps only the latest record per player between ticks (last write wins).
type Input struct {
	Forth  bool    `msgpack:"forth" json:"forth"`
	Back   bool    `msgpack:"back" json:"back"`
	Left   bool    `msgpack:"left" json:"left"`
	Right  bool    `msgpack:"right" json:"right"`
	Turn   float32 `msgpack:"turn" json:"turn"`
	Pitch  float32 `msgpack:"pitch" json:"pitch"`
	Jump   bool    `msgpack:"jump" json:"jump"`
	Sprint bool    `msgpack:"sprint" json:"sprint"`
	Shoot  bool    `msgpack:"shoot" json:"shoot"`
}

// Moving reports whether any positional movement key is held.
func (in *Input) Moving() bool {
	return in.Forth || in.Back || in.Left || in.Right
}
