package engine

import "context"

const (
	MinYear    = 2000
	MaxYear    = 2100
	MinQuarter = 1
	MaxQuarter = 4
)

// CanSelectYear returns a BoundsError when year is outside MinYear..MaxYear.
func CanSelectYear(year int) error {
	if year < MinYear || year > MaxYear {
		return BoundsError{What: "year", Value: year, Min: MinYear, Max: MaxYear}
	}
	return nil
}

// CanSelectQuarter returns a BoundsError when quarter is outside 1..4.
func CanSelectQuarter(quarter int) error {
	if quarter < MinQuarter || quarter > MaxQuarter {
		return BoundsError{What: "quarter", Value: quarter, Min: MinQuarter, Max: MaxQuarter}
	}
	return nil
}

// SetPeriod selects a year and quarter and reloads. Nothing changes when
// either is out of range or the load fails.
func (s *Service) SetPeriod(ctx context.Context, year, quarter int) (RunReport, error) {
	if err := CanSelectYear(year); err != nil {
		return RunReport{}, err
	}
	if err := CanSelectQuarter(quarter); err != nil {
		return RunReport{}, err
	}
	prevYear, prevQuarter := s.year, s.quarter
	s.year, s.quarter = year, quarter
	rep, err := s.Load(ctx)
	if err != nil {
		s.year, s.quarter = prevYear, prevQuarter
		return rep, err
	}
	return rep, nil
}

func (s *Service) PrevYear(ctx context.Context) (RunReport, error) {
	return s.SetPeriod(ctx, s.year-1, s.quarter)
}

func (s *Service) NextYear(ctx context.Context) (RunReport, error) {
	return s.SetPeriod(ctx, s.year+1, s.quarter)
}

// PrevQuarter stays inside the selected year; Q1 is a bound, not a wrap.
func (s *Service) PrevQuarter(ctx context.Context) (RunReport, error) {
	return s.SetPeriod(ctx, s.year, s.quarter-1)
}

func (s *Service) NextQuarter(ctx context.Context) (RunReport, error) {
	return s.SetPeriod(ctx, s.year, s.quarter+1)
}
