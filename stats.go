package poster

// Statistics summarizes the tracks of a poster.
type Statistics struct {
	Count   int
	Total   Distance
	Average Distance
	Lengths Range[Distance]
	Weeks   int
	PerYear map[int]Distance
}

// Weekly is the average number of tracks per week with at least one track.
func (s Statistics) Weekly() float64 {
	if s.Weeks == 0 {
		return 0
	}
	return float64(s.Count) / float64(s.Weeks)
}

// Min is the length of the shortest track, zero without tracks.
func (s Statistics) Min() Distance {
	return s.Lengths.Lower()
}

func (s Statistics) Max() Distance {
	return s.Lengths.Upper()
}

func (p *Poster) Statistics() Statistics {
	type week struct {
		year int
		week int
	}
	var (
		stats = Statistics{
			Count:   len(p.tracks),
			PerYear: make(map[int]Distance),
		}
		weeks = make(map[week]struct{})
	)
	for _, t := range p.tracks {
		stats.Total += t.Length
		stats.PerYear[t.Start.Year()] += t.Length
		stats.Lengths.Extend(t.Length)

		y, w := t.Start.ISOWeek()
		weeks[week{year: y, week: w}] = struct{}{}
	}
	if stats.Count > 0 {
		stats.Average = stats.Total / Distance(stats.Count)
	}
	stats.Weeks = len(weeks)
	return stats
}
