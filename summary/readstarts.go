package summary

// ReadStarts returns the first cycle of every read after the first one,
// given the read lengths in sequencing order. Lengths 101,8,101 give 102,110.
func ReadStarts(lengths []int) []int {
	var starts []int
	cycle := 1
	for _, n := range lengths {
		if cycle != 1 {
			starts = append(starts, cycle)
		}
		cycle += n
	}

	return starts
}
