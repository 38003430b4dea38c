package booking

// Row is one data row of a monthly booking sheet, after header resolution.
// Date, Weekday and Location are sparse in the source: they appear only on a
// day's first time slot and are forward-filled before extraction. Weekday and
// Location are carried for fidelity but unused downstream.
type Row struct {
	Date     Field // calendar date, e.g. "2025-11-05"
	Weekday  Field // weekday label, e.g. "週三"
	Location Field // room/location label
	Time     Field // raw time-range token, e.g. "0900-1200"
	Class    Field // class-use flag column ("V" when set)
	Loan     Field // loan-use flag column
	Visit    Field // visit-use flag column
	Reason   Field // application reason (free text)
	Unit     Field // application unit (free text)
}

// ForwardFill propagates the last non-empty Date, Weekday and Location values
// downward across subsequent rows, in place. Running it on already-filled
// rows is a no-op.
func ForwardFill(rows []Row) {
	var date, weekday, location Field
	for i := range rows {
		if rows[i].Date.Present() {
			date = rows[i].Date
		} else {
			rows[i].Date = date
		}
		if rows[i].Weekday.Present() {
			weekday = rows[i].Weekday
		} else {
			rows[i].Weekday = weekday
		}
		if rows[i].Location.Present() {
			location = rows[i].Location
		} else {
			rows[i].Location = location
		}
	}
}
