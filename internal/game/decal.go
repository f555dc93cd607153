package game

import "time"

// Decal is a short-lived floor sprite, e.g. the blood puddle left behind when
// a player finishes dying. Decals are independent of any entity and expire on
// their own timer.
type Decal struct {
	X       float32 `msgpack:"x" json:"x"`
	Y       float32 `msgpack:"y" json:"y"`
	Z       float32 `msgpack:"z" json:"z"`
	Texture string  `msgpack:"texture" json:"texture"`
	Width   float32 `msgpack:"width" json:"width"`
	Height  float32 `msgpack:"height" json:"height"`
}

// AddPuddle spawns a blood puddle decal at the given position. When the live
// decal cap is reached the oldest decal (lowest id, ids are monotonic) is
// evicted first.
func (m *MatchState) AddPuddle(x, y float32) {
	if len(m.Decals) >= MaxDecals {
		oldest := m.nextDecalID
		for id := range m.Decals {
			if id < oldest {
				oldest = id
			}
		}
		delete(m.Decals, oldest)
		delete(m.decalTTL, oldest)
	}

	m.Decals[m.nextDecalID] = Decal{
		X:       x,
		Y:       y,
		Z:       -0.0325,
		Texture: "puddle",
		Width:   0.3,
		Height:  0.075,
	}
	m.decalTTL[m.nextDecalID] = DecalTTL
	m.nextDecalID++
}

// SweepDecals counts down every decal's remaining lifetime and removes the
// expired ones. Reports whether the decal set changed.
func (m *MatchState) SweepDecals(dt time.Duration) bool {
	changed := false
	for id, ttl := range m.decalTTL {
		ttl -= dt
		if ttl <= 0 {
			delete(m.Decals, id)
			delete(m.decalTTL, id)
			changed = true
			continue
		}
		m.decalTTL[id] = ttl
	}
	return changed
}
