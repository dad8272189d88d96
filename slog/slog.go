// Package slog provides logging decorators for pagekeep services.
package slog
