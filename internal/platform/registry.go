// internal/platform/registry.go
package platform

// Platform identifies a publishing target. The registry is defined in code;
// per-campaign usage and exclusions live in the database.
type Platform struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Registry lists the supported platforms in fixed priority order. Selection
// walks this slice top to bottom.
func Registry() []Platform {
	return []Platform{
		{ID: "telegraph", Name: "Telegraph.ph", Domain: "telegra.ph"},
		{ID: "writeas", Name: "Write.as", Domain: "write.as"},
	}
}

// Default is returned when every exclusion read fails and selection has
// nothing to go on.
func Default() Platform {
	return Registry()[0]
}

// ByID looks up a platform in the registry.
func ByID(id string) (Platform, bool) {
	for _, p := range Registry() {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}
