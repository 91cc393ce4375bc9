package match

import "strings"

// Markers that flag a title as an add-on rather than a base game.
var dlcMarkers = []string{
	"dlc",
	"expansion",
	"season pass",
	"soundtrack",
	"ost",
	"upgrade pack",
	"content pack",
	"character pack",
	"map pack",
	"skin pack",
	"bonus content",
}

// LooksLikeDLC reports whether a title reads like add-on content.
// Heuristic only; callers that know better should not ask.
func LooksLikeDLC(name string) bool {
	n := " " + strings.ToLower(name) + " "
	for _, m := range dlcMarkers {
		if strings.Contains(n, " "+m+" ") || strings.Contains(n, " "+m+")") || strings.Contains(n, "("+m+" ") {
			return true
		}
	}
	return false
}
