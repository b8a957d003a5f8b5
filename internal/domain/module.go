package domain

// Module is a static product-catalog entry. The catalog is configuration
// loaded at startup; the engine never mutates it.
type Module struct {
	ID            string
	Name          string
	LiveMinutes   int
	OnlineMinutes int
	Locked        bool
	Prerequisites []string
	AffinityGroup string
	FirstValue    string
}

// Classification maps every catalog module ID to its delivery mode.
// Locked modules always map to ModeLive.
type Classification map[string]DeliveryMode

// Clone returns an independent copy of the classification.
func (c Classification) Clone() Classification {
	out := make(Classification, len(c))
	for id, mode := range c {
		out[id] = mode
	}
	return out
}

// LiveModules returns the IDs classified as live, in the order of the catalog.
func (c Classification) LiveModules(catalog []Module) []string {
	var ids []string
	for _, m := range catalog {
		if c[m.ID] == ModeLive {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// OnlineModules returns the IDs classified as online, in the order of the catalog.
func (c Classification) OnlineModules(catalog []Module) []string {
	var ids []string
	for _, m := range catalog {
		if c[m.ID] == ModeOnline {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Answers is the opaque questionnaire answer record. Keys are question IDs;
// values are whatever the questionnaire collected (bools, strings, numbers).
type Answers map[string]any
