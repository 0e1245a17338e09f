package legal

// CurrentStatus derives the current status of a process: the type of the
// performance with the greatest UpdatedAt. The source list carries no
// ordering guarantee, so ties keep whichever entry appeared first.
func CurrentStatus(performances []Performance) string {
	if len(performances) == 0 {
		return ""
	}
	latest := performances[0]
	for _, p := range performances[1:] {
		if p.UpdatedAt.After(latest.UpdatedAt) {
			latest = p
		}
	}
	return latest.Type
}
