package app

import "atlas_travel/internal/domain"

// userMessage picks the text an inline error region should show: the
// server-provided message when one exists, otherwise the flow's generic
// fallback.
func userMessage(err error, fallback string) string {
	if m := domain.RemoteMessage(err); m != "" {
		return m
	}
	return fallback
}
