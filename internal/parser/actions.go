package parser

import "strings"

type actionVerbResult struct {
	Action  ActionType
	IsAllIn bool
}

func anyCharNotNewline(c Cursor) (Cursor, byte, error) {
	rest := c.Rest()
	if len(rest) == 0 || rest[0] == '\n' {
		var zero byte
		return c, zero, failAt(c, "any non-newline character")
	}
	return c.advance(1), rest[0], nil
}

func restAny(c Cursor) (Cursor, string, error) {
	rest := c.Rest()
	return c.advance(len(rest)), rest, nil
}

// parseActionVerb recognises one of the verbs in the grammar table,
// expecting the cursor to sit on the leading space that separates the
// player name from the verb.
func parseActionVerb(c Cursor) (Cursor, actionVerbResult, error) {
	postSB := Map(Preceded(Tag(" posts small blind "), parseAmount), func(amt Amount) ActionType {
		return ActionType{Kind: ActionPost, PostKind: PostSmallBlind, Amount: amt}
	})
	postBB := Map(Preceded(Tag(" posts big blind "), parseAmount), func(amt Amount) ActionType {
		return ActionType{Kind: ActionPost, PostKind: PostBigBlind, Amount: amt}
	})
	postAnte := Map(Preceded(Tag(" posts ante "), parseAmount), func(amt Amount) ActionType {
		return ActionType{Kind: ActionPost, PostKind: PostAnte, Amount: amt}
	})
	checks := Map(Tag(" checks"), func(string) ActionType { return ActionType{Kind: ActionCheck} })
	folds := Map(Tag(" folds"), func(string) ActionType { return ActionType{Kind: ActionFold} })
	calls := Map(Preceded(Tag(" calls "), parseAmount), func(amt Amount) ActionType {
		return ActionType{Kind: ActionCall, Amount: amt}
	})
	bets := Map(Preceded(Tag(" bets "), parseAmount), func(amt Amount) ActionType {
		return ActionType{Kind: ActionBet, Amount: amt}
	})
	raises := func(c Cursor) (Cursor, ActionType, error) {
		c2, _, err := Tag(" raises ")(c)
		if err != nil {
			var zero ActionType
			return c, zero, err
		}
		c3, toCall, err := parseAmount(c2)
		if err != nil {
			var zero ActionType
			return c, zero, err
		}
		c4, _, err := Tag(" to ")(c3)
		if err != nil {
			var zero ActionType
			return c, zero, err
		}
		c5, amt, err := parseAmount(c4)
		if err != nil {
			var zero ActionType
			return c, zero, err
		}
		return c5, ActionType{Kind: ActionRaise, ToCall: toCall, RaiseTo: amt}, nil
	}
	collected := Map(Preceded(Tag(" collected"), restAny), func(string) ActionType { return ActionType{Kind: ActionCollect} })
	shows := Map(Preceded(Tag(" shows"), restAny), func(string) ActionType { return ActionType{Kind: ActionShows} })

	c2, at, err := Alt(postSB, postBB, postAnte, checks, folds, calls, bets, raises, collected, shows)(c)
	if err != nil {
		var zero actionVerbResult
		return c, zero, err
	}
	c3, allIn, _ := Opt(Tag(" and is all-in"))(c2)
	return c3, actionVerbResult{Action: at, IsAllIn: allIn != nil}, nil
}

// parseActionText parses one action line's full text (no trailing
// newline): "<player name> <verb>[ <args>]". The player name is consumed
// with many-till over non-newline characters until a leading space
// followed by a valid verb is found, matching the grammar's many_till
// construction.
func parseActionText(line string) (Action, error) {
	cur := NewCursor(line)
	result, outcome, err := ManyTill(anyCharNotNewline, parseActionVerb)(cur)
	if err != nil {
		return Action{}, err
	}
	if !result.AtEOF() {
		return Action{}, failAt(result, "end of action line")
	}
	nameBytes := make([]byte, len(outcome.Items))
	copy(nameBytes, outcome.Items)
	return Action{
		PlayerName: string(nameBytes),
		Action:     outcome.End.Action,
		IsAllIn:    outcome.End.IsAllIn,
	}, nil
}

// parseActionLine parses one action line from a multi-line cursor,
// including its trailing newline.
func parseActionLine(c Cursor) (Cursor, Action, error) {
	c2, line, err := RestOfLine(c)
	if err != nil {
		var zero Action
		return c, zero, err
	}
	if strings.TrimSpace(line) == "" {
		var zero Action
		return c, zero, failAt(c, "non-blank action line")
	}
	act, pErr := parseActionText(line)
	if pErr != nil {
		var zero Action
		return c, zero, pErr
	}
	if c2.AtEOF() {
		return c2, act, nil
	}
	c3, _, err := Newline(c2)
	if err != nil {
		var zero Action
		return c, zero, err
	}
	return c3, act, nil
}

// parseActions parses zero or more consecutive action lines.
func parseActions(c Cursor) (Cursor, []Action, error) {
	return Many0(parseActionLine)(c)
}
