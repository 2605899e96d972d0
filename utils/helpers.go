package utils

// statsIntervals are the ClickHouse toStartOf<Interval> bucket functions the stats
// endpoints accept. The interval is spliced into SQL, so nothing else may pass.
var statsIntervals = map[string]struct{}{
	"Minute": {}, "Hour": {}, "Day": {}, "Week": {}, "Month": {}, "Quarter": {}, "Year": {},
}

func IsValidInterval(interval string) bool {
	_, ok := statsIntervals[interval]
	return ok
}
