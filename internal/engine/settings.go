package engine

import (
	"context"
	"strconv"
)

func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	if err := s.kv.Set(ctx, darkModeKey, strconv.FormatBool(on)); err != nil {
		return err
	}
	s.darkMode = on
	return nil
}

func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	on := !s.darkMode
	if err := s.SetDarkMode(ctx, on); err != nil {
		return s.darkMode, err
	}
	return on, nil
}
