package blocks

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	Best    int
	Lines   int
	Pieces  int
	TopOuts int
	Kind    Kind
	X       int
	Y       int
	ShadowY int
	Filled  int
	Paused  bool
	Board   string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	stats := g.session.Stats()
	active := g.session.Active()
	arena := g.session.Arena()
	return Snapshot{
		Tick:    g.tick,
		Score:   g.session.Score(),
		Best:    g.best,
		Lines:   stats.Lines,
		Pieces:  stats.Pieces,
		TopOuts: stats.TopOuts,
		Kind:    active.Kind,
		X:       active.Pos.X,
		Y:       active.Pos.Y,
		ShadowY: g.session.Shadow().Pos.Y,
		Filled:  arena.FilledCount(),
		Paused:  g.paused,
		Board:   arena.String(),
	}
}
