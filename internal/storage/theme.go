package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var ErrInvalidTheme = errors.New("invalid theme")

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q (must be 'dark' or 'light')", ErrInvalidTheme, s)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeRepository remembers the colour theme between runs.
type ThemeRepository struct {
	slot     Slot
	fallback Theme
	logger   *zap.Logger
}

func NewThemeRepository(slot Slot, fallback Theme, logger *zap.Logger) *ThemeRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := ParseTheme(string(fallback)); err != nil {
		fallback = ThemeDark
	}
	return &ThemeRepository{
		slot:     slot,
		fallback: fallback,
		logger:   logger.Named("theme"),
	}
}

func (r *ThemeRepository) Load(ctx context.Context) Theme {
	data, found, err := r.slot.Get(ctx, ThemeKey)
	if err != nil {
		r.logger.Warn("theme slot unreadable", zap.Error(err))
		return r.fallback
	}
	if !found {
		return r.fallback
	}

	theme, err := ParseTheme(string(data))
	if err != nil {
		r.logger.Debug("ignoring stored theme", zap.Error(err))
		return r.fallback
	}
	return theme
}

func (r *ThemeRepository) Save(ctx context.Context, theme Theme) {
	if err := r.slot.Set(ctx, ThemeKey, []byte(theme)); err != nil {
		r.logger.Warn("failed to persist theme", zap.String("theme", string(theme)), zap.Error(err))
	}
}
