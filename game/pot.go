package game

import "sort"

// Pot holds chips contested by a fixed set of players. Multiple pots coexist
// only when all-ins create unequal contribution tiers.
type Pot struct {
	Amount            int64    `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayers"`
}

func (p *Pot) addEligible(playerID string) {
	for _, id := range p.EligiblePlayerIDs {
		if id == playerID {
			return
		}
	}
	p.EligiblePlayerIDs = append(p.EligiblePlayerIDs, playerID)
}

func (p *Pot) isEligible(playerID string) bool {
	for _, id := range p.EligiblePlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// sameEligibility compares eligible sets by persistent id, order-insensitive.
func sameEligibility(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// reconcilePots converts the current street's contributions into pots.
//
// The lowest positive bet among non-folded players defines a tier; every
// contributor puts min(remaining, tier) into that tier's pot. A player whose
// contribution is exhausted at a tier and who is all-in drops out of
// eligibility for higher tiers, which is what creates side pots. Folded
// players contribute chips but are never eligible. A tier pot whose eligible
// set matches an existing pot is merged into it.
//
// Returns an InvariantError when the chips moved into pots do not equal the
// street's contributions.
func (h *HandState) reconcilePots() error {
	remaining := make([]int64, len(h.seats))
	var contributed int64
	for i, p := range h.seats {
		remaining[i] = p.CurrentStreetBet
		contributed += p.CurrentStreetBet
	}
	if contributed == 0 {
		// Everyone checked; nothing to move.
		return nil
	}

	var moved int64
	for {
		tier := int64(-1)
		for i, p := range h.seats {
			if p.HasFolded || remaining[i] <= 0 {
				continue
			}
			if tier == -1 || remaining[i] < tier {
				tier = remaining[i]
			}
		}
		if tier == -1 {
			// Only folded players still have chips outstanding; their excess
			// sweetens the most recent pot without granting eligibility.
			last := h.lastPot()
			for i := range h.seats {
				if remaining[i] > 0 {
					last.Amount += remaining[i]
					moved += remaining[i]
					remaining[i] = 0
				}
			}
			break
		}

		pot := &Pot{}
		for i, p := range h.seats {
			if remaining[i] <= 0 {
				continue
			}
			c := remaining[i]
			if c > tier {
				c = tier
			}
			pot.Amount += c
			moved += c
			remaining[i] -= c
			if !p.HasFolded {
				pot.addEligible(p.PersistentID)
			}
		}
		h.mergePot(pot)

		done := true
		for i := range h.seats {
			if remaining[i] > 0 {
				done = false
				break
			}
		}
		if done {
			break
		}
	}

	if moved != contributed {
		return invariantErrorf("pot reconciliation moved %d chips but %d were contributed", moved, contributed)
	}

	for _, p := range h.seats {
		p.CurrentStreetBet = 0
	}
	return nil
}

func (h *HandState) mergePot(pot *Pot) {
	if pot.Amount == 0 {
		return
	}
	for _, existing := range h.Pots {
		if sameEligibility(existing.EligiblePlayerIDs, pot.EligiblePlayerIDs) {
			existing.Amount += pot.Amount
			return
		}
	}
	h.Pots = append(h.Pots, pot)
}

func (h *HandState) lastPot() *Pot {
	if len(h.Pots) == 0 {
		h.Pots = append(h.Pots, &Pot{})
	}
	return h.Pots[len(h.Pots)-1]
}

// potTotal is the settled pot plus chips still sitting in front of players.
func (h *HandState) potTotal() int64 {
	var total int64
	for _, p := range h.Pots {
		total += p.Amount
	}
	for _, p := range h.seats {
		total += p.CurrentStreetBet
	}
	return total
}
