package cryptotax

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to create a date from its string form.
func day(s string) Date { return MustParseDate(s) }
