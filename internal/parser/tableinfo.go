package parser

import "strconv"

// parseTableName parses the table line's quoted name, trying the
// tournament form name(id)#tableId before falling back to a free-form
// cash-game name, since the tournament form is the more specific
// alternative.
func parseTableName(c Cursor) (Cursor, TableName, error) {
	tournament := func(c Cursor) (Cursor, TableName, error) {
		c2, name, err := TakeUntil("(")(c)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		c3, _, err := Tag("(")(c2)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		c4, idDigits, err := Digits1(c3)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		id, convErr := strconv.ParseUint(idDigits, 10, 64)
		if convErr != nil {
			var zero TableName
			return c, zero, failAt(c, "tournament id in range")
		}
		c5, _, err := Tag(")#")(c4)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		c6, tableDigits, err := Digits1(c5)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		tableID, convErr := strconv.ParseUint(tableDigits, 10, 32)
		if convErr != nil {
			var zero TableName
			return c, zero, failAt(c, "table id in range")
		}
		return c6, TableName{Kind: TableTournament, TournamentName: name, TournamentID: id, TableID: uint32(tableID)}, nil
	}
	cashGame := func(c Cursor) (Cursor, TableName, error) {
		c2, name, err := TakeUntil("'")(c)
		if err != nil {
			var zero TableName
			return c, zero, err
		}
		return c2, TableName{Kind: TableCashGame, CashGameName: name}, nil
	}
	return Alt(tournament, cashGame)(c)
}

func parseMoneyType(c Cursor) (Cursor, MoneyType, error) {
	real := Map(Tag("real money"), func(string) MoneyType { return RealMoney })
	play := Map(Tag("play money"), func(string) MoneyType { return PlayMoney })
	return Alt(real, play)(c)
}

// parseTableInfo parses:
// `Table: '<tableName>' <maxPlayers>-max (<real|play money>) Seat #<button> is the button`
func parseTableInfo(c Cursor) (Cursor, TableInfo, error) {
	c2, _, err := Tag("Table: '")(c)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c3, tableName, err := parseTableName(c2)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c4, _, err := Tag("' ")(c3)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c5, maxDigits, err := Digits1(c4)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	maxPlayers, convErr := strconv.Atoi(maxDigits)
	if convErr != nil {
		var zero TableInfo
		return c, zero, failAt(c, "max players in range")
	}
	c6, _, err := Tag("-max (")(c5)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c7, currency, err := parseMoneyType(c6)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c8, _, err := Tag(") Seat #")(c7)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	c9, buttonDigits, err := Digits1(c8)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	button, convErr := strconv.Atoi(buttonDigits)
	if convErr != nil {
		var zero TableInfo
		return c, zero, failAt(c, "button seat in range")
	}
	c10, _, err := Tag(" is the button")(c9)
	if err != nil {
		var zero TableInfo
		return c, zero, err
	}
	return c10, TableInfo{TableName: tableName, MaxPlayers: maxPlayers, Currency: currency, Button: button}, nil
}
