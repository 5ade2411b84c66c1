package dbc

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/wowfmt/pkg/archive"
)

// ErrRecordNotFound is returned when a requested record id is absent.
var ErrRecordNotFound = errors.New("record not found")

// TalentTree is one talent tab joined with its icon and its talents.
type TalentTree struct {
	Tab      TalentTab `json:"tab"`
	IconPath string    `json:"icon_path"`
	Talents  []Talent  `json:"talents"`
}

// JoinTalents loads Talent.dbc, TalentTab.dbc and SpellIcon.dbc from src and
// groups talents under their tab, ordered by tier then column. If tabID is
// not nil only that tab is returned.
func JoinTalents(src archive.Source, tabID *uint32) ([]TalentTree, error) {
	talents, err := LoadFrom(TalentSchema, src, TalentSchema.Name)
	if err != nil {
		return nil, err
	}
	tabs, err := LoadFrom(TalentTabSchema, src, TalentTabSchema.Name)
	if err != nil {
		return nil, err
	}
	icons, err := LoadFrom(SpellIconSchema, src, SpellIconSchema.Name)
	if err != nil {
		return nil, err
	}

	iconPaths := make(map[uint32]string, len(icons.Records))
	for _, ic := range icons.Records {
		iconPaths[ic.ID] = ic.TextureFilename
	}

	byTab := make(map[uint32][]Talent)
	for _, t := range talents.Records {
		byTab[t.TabID] = append(byTab[t.TabID], t)
	}

	var out []TalentTree
	for _, tab := range tabs.Records {
		if tabID != nil && tab.ID != *tabID {
			continue
		}
		list := byTab[tab.ID]
		slices.SortStableFunc(list, func(a, b Talent) int {
			if c := cmp.Compare(a.TierID, b.TierID); c != 0 {
				return c
			}
			return cmp.Compare(a.ColumnIndex, b.ColumnIndex)
		})
		out = append(out, TalentTree{
			Tab:      tab,
			IconPath: iconPaths[tab.SpellIconID],
			Talents:  list,
		})
	}

	if tabID != nil && len(out) == 0 {
		return nil, fmt.Errorf("%w: talent tab %d", ErrRecordNotFound, *tabID)
	}
	slices.SortStableFunc(out, func(a, b TalentTree) int {
		if c := cmp.Compare(a.Tab.ClassMask, b.Tab.ClassMask); c != 0 {
			return c
		}
		return cmp.Compare(a.Tab.OrderIndex, b.Tab.OrderIndex)
	})
	return out, nil
}
