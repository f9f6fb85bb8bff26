package evaluator

import rand "math/rand/v2"

const (
	// dealerStandsOn is the best value at which the dealer stops drawing
	dealerStandsOn = 17

	// alwaysHitBelow is the player policy's guaranteed-hit ceiling
	alwaysHitBelow = 12

	// maxHandSize caps the cards a simulated hand can hold
	maxHandSize = 12
)

// trialRunner holds the scratch buffers for one worker. Nothing in the
// trial loop allocates once the runner exists.
type trialRunner struct {
	base   *packed
	values []int8
	aces   []bool
	rng    *rand.Rand
}

func newTrialRunner(base *packed, rng *rand.Rand) *trialRunner {
	return &trialRunner{
		base:   base,
		values: make([]int8, len(base.values)),
		aces:   make([]bool, len(base.aces)),
		rng:    rng,
	}
}

// run plays n trials of action and returns the number of wins
func (r *trialRunner) run(action Action, n int) int {
	wins := 0
	for range n {
		if r.trial(action) {
			wins++
		}
	}
	return wins
}

// trial plays one randomized playout. Pushes count as non-wins.
func (r *trialRunner) trial(action Action) bool {
	copy(r.values, r.base.values)
	copy(r.aces, r.base.aces)
	for i := len(r.values) - 1; i > 0; i-- {
		j := r.rng.IntN(i + 1)
		r.values[i], r.values[j] = r.values[j], r.values[i]
		r.aces[i], r.aces[j] = r.aces[j], r.aces[i]
	}

	next := 0
	player := r.base.player
	dealer := r.base.dealer

	switch action {
	case Hit:
		next = r.draw(&player, next)
		if value(player) > 21 {
			return false
		}
		next = r.playPlayer(&player, next)
	case Double:
		next = r.draw(&player, next)
		if value(player) > 21 {
			return false
		}
	case Split:
		// Only one resulting hand is modelled: one extra card and the
		// normal playout.
		next = r.draw(&player, next)
		next = r.playPlayer(&player, next)
	}

	playerValue := value(player)
	if playerValue > 21 {
		return false
	}

	for value(dealer) < dealerStandsOn {
		var ok bool
		if next, ok = r.tryDraw(&dealer, next); !ok {
			break
		}
	}
	dealerValue := value(dealer)

	return dealerValue > 21 || playerValue > dealerValue
}

// playPlayer applies the simplified policy: always draw up to 11, draw
// half the time on 12-16, stop on 17 or more.
func (r *trialRunner) playPlayer(h *packedHand, next int) int {
	for {
		v := value(*h)
		if v >= dealerStandsOn {
			return next
		}
		if v >= alwaysHitBelow && r.rng.Float64() >= 0.5 {
			return next
		}
		var ok bool
		if next, ok = r.tryDraw(h, next); !ok {
			return next
		}
		if value(*h) > 21 {
			return next
		}
	}
}

func (r *trialRunner) draw(h *packedHand, next int) int {
	next, _ = r.tryDraw(h, next)
	return next
}

func (r *trialRunner) tryDraw(h *packedHand, next int) (int, bool) {
	if next >= len(r.values) || h.size >= maxHandSize {
		return next, false
	}
	h.total += int(r.values[next])
	if r.aces[next] {
		h.aces++
	}
	h.size++
	return next + 1, true
}

func value(h packedHand) int {
	total, aces := h.total, h.aces
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
