package game

// Outcome messages returned by the engine
const (
	MsgBlackjackPush = "Push: both have Blackjack!"
	MsgBlackjackWin  = "Blackjack! You win!"

	MsgBust                = "You busted! Dealer wins."
	MsgFirstHandBusted     = "First hand busted! Now playing split hand."
	MsgFirstHandStands     = "First hand stands. Now playing split hand."
	MsgFirstHandDoubleDone = "Double down complete on first hand. Now playing split hand."
	MsgSplit               = "Hand split! Playing first hand."

	MsgCannotSplitPair   = "Cannot split: need exactly two cards of equal value."
	MsgCannotSplitAgain  = "Cannot split: hand already split."
	MsgCannotDoubleCards = "Cannot double: only allowed on the first two cards of a hand."
	MsgCannotDoubleAgain = "Cannot double: hand already doubled."

	MsgDealerBlackjack = "Dealer has Blackjack. You lose."

	MsgDealerBust          = "Dealer busted! You win!"
	MsgDealerBustBothWin   = "Dealer busted! Both hands win!"
	MsgDealerBustFirstWins = "Dealer busted! First hand wins, split hand busted."
	MsgDealerBustSplitWins = "Dealer busted! Split hand wins, first hand busted."

	MsgDealerWins = "Dealer wins."
	MsgPlayerWins = "You win!"
	MsgPush       = "Push: it's a tie."

	MsgBothBusted      = "Both hands busted. Dealer wins."
	MsgBothWin         = "Both hands win!"
	MsgOneWinOnePush   = "One hand wins, one pushes."
	MsgBothPush        = "Both hands push."
	MsgOneLoseOnePush  = "One hand loses, one pushes."
	MsgBothLose        = "Both hands lose. Dealer wins."
	firstBustedPrefix  = "First hand busted. Split hand "
	secondBustedPrefix = "Split hand busted. First hand "
)

// result is one hand's standing against the dealer
type result int

const (
	lose result = iota - 1
	push
	win
)

func compare(player, dealer int) result {
	switch {
	case player > dealer:
		return win
	case player < dealer:
		return lose
	default:
		return push
	}
}

// singleMessage phrases a no-split settlement
func singleMessage(r result) string {
	switch r {
	case win:
		return MsgPlayerWins
	case lose:
		return MsgDealerWins
	default:
		return MsgPush
	}
}

// survivorMessage phrases the hand left standing when its partner busted
func survivorMessage(prefix string, r result) string {
	switch r {
	case win:
		return prefix + "wins!"
	case lose:
		return prefix + "loses."
	default:
		return prefix + "pushes."
	}
}

// splitMessage phrases a settlement where neither split hand busted
func splitMessage(first, second result) string {
	switch first + second {
	case 2:
		return MsgBothWin
	case 1:
		return MsgOneWinOnePush
	case 0:
		// A win and a loss cancel out like two pushes
		return MsgBothPush
	case -1:
		return MsgOneLoseOnePush
	default:
		return MsgBothLose
	}
}
