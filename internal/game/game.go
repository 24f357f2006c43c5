package game

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// NumCards is the size of the deck: four pairs.
	NumCards = 8
	// NumPairs is the number of pairs to find.
	NumPairs = NumCards / 2
	// CooldownSeconds is how long two picked cards stay face-up before the
	// match or flip-back effect runs.
	CooldownSeconds = 1.0
	// FlipSpeed is the card flip animation speed in degrees per second.
	FlipSpeed = 540.0
	// FaceUp is the flip angle of a revealed card.
	FaceUp = 180.0
)

// Phase is the match-game state.
type Phase int

const (
	Idle Phase = iota
	FirstPicked
	SecondPicked
	Matched
	Mismatched
	Cooldown
)

var phaseNames = [...]string{"idle", "first-picked", "second-picked", "matched", "mismatched", "cooldown"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

type effect int

const (
	effectNone effect = iota
	effectMoveToPile
	effectFlipBack
)

// Card is one of the eight cards. Its identity is its index in Game.Cards.
type Card struct {
	Slot     int // table slot the card was dealt to
	Position mgl32.Vec3
	Used     bool // face-up, either picked or matched
	Matched  bool
	Rotation float32 // current flip angle in degrees
	Target   float32 // angle the flip animation moves toward
}

// Game is the card-matching mini-game. It is not safe for concurrent use;
// the render loop owns it.
type Game struct {
	Cards [NumCards]Card
	Phase Phase

	First        int // card index of the first pick, -1 when none
	Second       int // card index of the second pick, -1 when none
	Picks        int // consecutive selections, 0..2
	Pairs        int // completed pairs
	Timer        float64
	NeedsShuffle bool

	pending effect
	slots   [NumCards]mgl32.Vec3
	pile    [NumCards]mgl32.Vec3
	rng     *rand.Rand
}

// New deals a shuffled game. slots are the table positions addressed by the
// digit keys; pile are the positions matched cards move to, two per pair.
func New(rng *rand.Rand, slots, pile [NumCards]mgl32.Vec3) *Game {
	g := &Game{slots: slots, pile: pile, rng: rng}
	g.Shuffle()
	return g
}

// SamePair reports whether cards a and b form a pair.
func SamePair(a, b int) bool {
	return a/2 == b/2
}

// PairOf returns the pair number of card i.
func PairOf(i int) int {
	return i / 2
}

// Shuffle deals the cards onto a fresh permutation of the table slots and
// clears all progress.
func (g *Game) Shuffle() {
	order := g.rng.Perm(NumCards)
	for i := range g.Cards {
		g.Cards[i] = Card{
			Slot:     order[i],
			Position: g.slots[order[i]],
		}
	}
	g.Phase = Idle
	g.First, g.Second = -1, -1
	g.Picks = 0
	g.Pairs = 0
	g.Timer = 0
	g.pending = effectNone
	g.NeedsShuffle = false
}

// RequestReset schedules a reshuffle for the next Update.
func (g *Game) RequestReset() {
	g.NeedsShuffle = true
}

// CardAt returns the index of the card dealt to the given table slot, or -1.
func (g *Game) CardAt(slot int) int {
	for i := range g.Cards {
		if g.Cards[i].Slot == slot {
			return i
		}
	}
	return -1
}

// Select picks the card lying on the given table slot. It returns false
// when the pick is ignored: unknown slot, card already face-up, a cooldown
// in progress or the game already won.
func (g *Game) Select(slot int, now float64) bool {
	if slot < 0 || slot >= NumCards || g.pending != effectNone || g.Won() {
		return false
	}
	i := g.CardAt(slot)
	if i < 0 || g.Cards[i].Used {
		return false
	}

	c := &g.Cards[i]
	c.Used = true
	c.Target = FaceUp
	g.Picks++

	if g.Picks == 1 {
		g.First = i
		g.Phase = FirstPicked
		return true
	}

	g.Second = i
	g.Phase = SecondPicked
	g.Picks = 0
	g.Timer = now
	if SamePair(g.First, g.Second) {
		g.Phase = Matched
		g.pending = effectMoveToPile
	} else {
		g.Phase = Mismatched
		g.pending = effectFlipBack
	}
	return true
}

// Update advances timers and animations. now is the absolute time in
// seconds and dt the time since the previous frame.
func (g *Game) Update(now, dt float64) {
	if g.NeedsShuffle {
		g.Shuffle()
	}

	switch g.Phase {
	case Matched, Mismatched:
		g.Phase = Cooldown
	}
	if g.pending != effectNone && now-g.Timer >= CooldownSeconds {
		g.resolve()
	}

	step := float32(FlipSpeed * dt)
	for i := range g.Cards {
		c := &g.Cards[i]
		switch {
		case c.Rotation < c.Target:
			c.Rotation = min(c.Rotation+step, c.Target)
		case c.Rotation > c.Target:
			c.Rotation = max(c.Rotation-step, c.Target)
		}
	}
}

func (g *Game) resolve() {
	a, b := &g.Cards[g.First], &g.Cards[g.Second]
	switch g.pending {
	case effectMoveToPile:
		a.Matched, b.Matched = true, true
		a.Position = g.pile[g.Pairs*2]
		b.Position = g.pile[g.Pairs*2+1]
		g.Pairs++
	case effectFlipBack:
		a.Used, b.Used = false, false
		a.Target, b.Target = 0, 0
	}
	g.pending = effectNone
	g.First, g.Second = -1, -1
	g.Phase = Idle
}

// CoolingDown reports whether a match or flip-back effect is waiting.
func (g *Game) CoolingDown() bool {
	return g.pending != effectNone
}

// Won reports whether every card has been matched.
func (g *Game) Won() bool {
	for i := range g.Cards {
		if !g.Cards[i].Used || !g.Cards[i].Matched {
			return false
		}
	}
	return true
}
