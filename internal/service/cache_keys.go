package service

import (
	"strings"

	"github.com/mmcdole/anispin/internal/domain"
)

// Store keys shared by the services
const (
	// PrefixUserLists is the prefix for resolved list caches (cache_listas_{users})
	PrefixUserLists = "cache_listas_"

	// KeyGlobalResults holds the last filtered result list of a username-less spin
	KeyGlobalResults = "cache_busca_global"

	// KeyHistory holds the recently shown titles
	KeyHistory = "anime_history"
)

// userListsKey identifies a username combination regardless of order or case
func userListsKey(usernames []string) string {
	return strings.Join(domain.NormalizeUsernames(usernames), ",")
}
